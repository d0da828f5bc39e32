package web

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// pageCache holds whole rendered responses for the home feed. Entries
// expire after the TTL; within it, readers get byte-identical content no
// matter what happens to the underlying posts. Freshness is traded for
// read throughput on the highest-traffic page.
type pageCache struct {
	lru *expirable.LRU[string, []byte]
}

func newPageCache(ttl time.Duration) *pageCache {
	return &pageCache{
		lru: expirable.NewLRU[string, []byte](64, nil, ttl),
	}
}

func (c *pageCache) Get(key string) ([]byte, bool) {
	return c.lru.Get(key)
}

func (c *pageCache) Add(key string, byts []byte) {
	c.lru.Add(key, byts)
}

func (c *pageCache) Purge() {
	c.lru.Purge()
}
