package web

import (
	"net/http"
	"strconv"

	"github.com/dkazarin/yatube/internal/yatube"
)

// Every feed shows at most this many posts per page.
const pageSize = 10

// parsePage reads the 1-based ?page= parameter. Anything unparsable or
// below 1 falls back to the first page; pages past the end simply come
// back empty from the store.
func parsePage(r *http.Request) int {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	return page
}

func pageOffset(page int) uint64 {
	return uint64(page-1) * pageSize
}

// pageData is the slice of a feed handed to the templates.
type pageData struct {
	Posts  []yatube.Post
	Number int

	HasPrev  bool
	HasNext  bool
	PrevPage int
	NextPage int
}

func newPageData(posts []yatube.Post, page int, total int) pageData {
	return pageData{
		Posts:    posts,
		Number:   page,
		HasPrev:  page > 1,
		HasNext:  uint64(total) > pageOffset(page)+uint64(len(posts)),
		PrevPage: page - 1,
		NextPage: page + 1,
	}
}
