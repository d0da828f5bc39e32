package yatube

import (
	"context"
	"time"
)

type (
	PostService interface {
		InsertPost(ctx context.Context, post Post) (Post, error)
		Post(ctx context.Context, id int64) (Post, error)
		UpdatePost(ctx context.Context, id int64, args UpdatePostArgs) error
		DeletePost(ctx context.Context, id int64) error
		ListPosts(ctx context.Context, args ListPostsArgs) ([]Post, error)
		CountPosts(ctx context.Context, args ListPostsArgs) (int, error)
	}

	GroupService interface {
		CreateGroup(ctx context.Context, group Group) (Group, error)
		GroupBySlug(ctx context.Context, slug string) (Group, error)
		AllGroups(ctx context.Context) ([]Group, error)
	}

	// Group is a named topic that posts can be filed under.
	Group struct {
		ID          int64     `db:"id"`
		Slug        string    `db:"slug"`
		Title       string    `db:"title"`
		Description string    `db:"description"`
		CreatedAt   time.Time `db:"created_at"`
	}

	// Post is a single blog entry. The author fields and group fields past
	// the foreign keys are filled in by the repository's joins so list views
	// don't have to fan out per row.
	Post struct {
		ID        int64     `db:"id"`
		Text      string    `db:"text"`
		AuthorID  int64     `db:"author_id"`
		GroupID   *int64    `db:"group_id"`
		Image     string    `db:"image"` // media-relative path, empty when no upload
		CreatedAt time.Time `db:"created_at"`

		AuthorUsername string  `db:"author_username"`
		GroupSlug      *string `db:"group_slug"`
		GroupTitle     *string `db:"group_title"`
	}

	// Holds the optional fields for updating a post. Author and id never change.
	UpdatePostArgs struct {
		Text    string
		GroupID *int64
		Image   string
	}

	// ListPostsArgs selects the scope of a feed. Zero value means the global
	// feed. At most one of GroupSlug, AuthorUsername, FollowedBy is set.
	ListPostsArgs struct {
		GroupSlug      string
		AuthorUsername string
		FollowedBy     int64 // user id whose followed authors make up the feed

		Limit  uint64
		Offset uint64
	}
)
