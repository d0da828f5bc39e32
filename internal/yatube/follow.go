package yatube

import (
	"context"
	"time"
)

type FollowService interface {
	// Follow is idempotent: following twice leaves a single edge.
	Follow(ctx context.Context, followerID int64, authorID int64) error
	Unfollow(ctx context.Context, followerID int64, authorID int64) error
	Follows(ctx context.Context, followerID int64, authorID int64) (bool, error)
}

// Follow is a directed edge: follower wants author's posts in their feed.
type Follow struct {
	ID         int64     `db:"id"`
	FollowerID int64     `db:"follower_id"`
	AuthorID   int64     `db:"author_id"`
	CreatedAt  time.Time `db:"created_at"`
}
