package yatube

import (
	"context"
	"time"
)

type CommentService interface {
	InsertComment(ctx context.Context, comment Comment) (Comment, error)
	PostComments(ctx context.Context, postID int64) ([]Comment, error)
}

// Comment is attached to exactly one post. AuthorUsername is filled by the
// repository's join.
type Comment struct {
	ID        int64     `db:"id"`
	PostID    int64     `db:"post_id"`
	AuthorID  int64     `db:"author_id"`
	Text      string    `db:"text"`
	CreatedAt time.Time `db:"created_at"`

	AuthorUsername string `db:"author_username"`
}
