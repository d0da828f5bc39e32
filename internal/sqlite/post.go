package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/dkazarin/yatube/internal/yatube"
)

const postColumns = `p.id, p.text, p.author_id, p.group_id, p.image, p.created_at,
	u.username AS author_username, g.slug AS group_slug, g.title AS group_title`

func (r Repo) InsertPost(ctx context.Context, post yatube.Post) (yatube.Post, error) {
	const q = `INSERT INTO posts (text, author_id, group_id, image) VALUES (?, ?, ?, ?);`

	res, err := r.db.ExecContext(ctx, q, post.Text, post.AuthorID, post.GroupID, post.Image)
	if err != nil {
		return yatube.Post{}, fmt.Errorf("error inserting post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return yatube.Post{}, fmt.Errorf("error reading inserted post id: %w", err)
	}

	return r.Post(ctx, id)
}

func (r Repo) Post(ctx context.Context, id int64) (yatube.Post, error) {
	q := fmt.Sprintf(`SELECT %s FROM posts p
	INNER JOIN users u ON u.id = p.author_id
	LEFT JOIN groups g ON g.id = p.group_id
	WHERE p.id = ?;`, postColumns)

	var post yatube.Post
	err := r.db.GetContext(ctx, &post, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return yatube.Post{}, yatube.ErrNotFound
	}
	if err != nil {
		return yatube.Post{}, err
	}

	return post, nil
}

func (r Repo) UpdatePost(ctx context.Context, id int64, args yatube.UpdatePostArgs) error {
	q := sq.Update("posts").
		Set("text", args.Text).
		Set("group_id", args.GroupID).
		Where(sq.Eq{"id": id})
	if args.Image != "" {
		q = q.Set("image", args.Image)
	}

	query, queryArgs, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("error generating SQL query: %s", err)
	}
	if _, err := r.db.ExecContext(ctx, query, queryArgs...); err != nil {
		return fmt.Errorf("error updating post: %s", err)
	}

	return nil
}

func (r Repo) DeletePost(ctx context.Context, id int64) error {
	const q = `DELETE FROM posts WHERE id = ?;`
	if _, err := r.db.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("error deleting post: %s", err)
	}

	return nil
}

// scopedPosts applies the feed scope filters shared by ListPosts and CountPosts.
func scopedPosts(q sq.SelectBuilder, args yatube.ListPostsArgs) sq.SelectBuilder {
	q = q.From("posts p").
		InnerJoin("users u ON u.id = p.author_id").
		LeftJoin("groups g ON g.id = p.group_id")

	if args.GroupSlug != "" {
		q = q.Where(sq.Eq{"g.slug": args.GroupSlug})
	}
	if args.AuthorUsername != "" {
		q = q.Where(sq.Eq{"u.username": args.AuthorUsername})
	}
	if args.FollowedBy != 0 {
		q = q.Where("p.author_id IN (SELECT author_id FROM follows WHERE follower_id = ?)", args.FollowedBy)
	}

	return q
}

func (r Repo) ListPosts(ctx context.Context, args yatube.ListPostsArgs) ([]yatube.Post, error) {
	q := scopedPosts(sq.Select(postColumns), args).
		OrderBy("p.created_at DESC", "p.id DESC")
	if args.Limit > 0 {
		q = q.Limit(args.Limit)
	}
	if args.Offset > 0 {
		q = q.Offset(args.Offset)
	}

	query, queryArgs, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error generating SQL query: %s", err)
	}

	var posts []yatube.Post
	if err := r.db.SelectContext(ctx, &posts, query, queryArgs...); err != nil {
		return nil, fmt.Errorf("error selecting posts: %s", err)
	}

	return posts, nil
}

func (r Repo) CountPosts(ctx context.Context, args yatube.ListPostsArgs) (int, error) {
	query, queryArgs, err := scopedPosts(sq.Select("COUNT(*)"), args).ToSql()
	if err != nil {
		return 0, fmt.Errorf("error generating SQL query: %s", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, queryArgs...); err != nil {
		return 0, fmt.Errorf("error counting posts: %s", err)
	}

	return count, nil
}
