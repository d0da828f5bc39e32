package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dkazarin/yatube/internal/yatube"
)

func (r Repo) InsertComment(ctx context.Context, comment yatube.Comment) (yatube.Comment, error) {
	const q = `INSERT INTO comments (post_id, author_id, text) VALUES (?, ?, ?);`

	res, err := r.db.ExecContext(ctx, q, comment.PostID, comment.AuthorID, comment.Text)
	if err != nil {
		return yatube.Comment{}, fmt.Errorf("error inserting comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return yatube.Comment{}, fmt.Errorf("error reading inserted comment id: %w", err)
	}

	const get = `SELECT c.id, c.post_id, c.author_id, c.text, c.created_at,
		u.username AS author_username
	FROM comments c
	INNER JOIN users u ON u.id = c.author_id
	WHERE c.id = ?;`

	var out yatube.Comment
	err = r.db.GetContext(ctx, &out, get, id)
	if errors.Is(err, sql.ErrNoRows) {
		return yatube.Comment{}, yatube.ErrNotFound
	}
	if err != nil {
		return yatube.Comment{}, err
	}

	return out, nil
}

func (r Repo) PostComments(ctx context.Context, postID int64) ([]yatube.Comment, error) {
	const q = `SELECT c.id, c.post_id, c.author_id, c.text, c.created_at,
		u.username AS author_username
	FROM comments c
	INNER JOIN users u ON u.id = c.author_id
	WHERE c.post_id = ?
	ORDER BY c.created_at, c.id;`

	var comments []yatube.Comment
	if err := r.db.SelectContext(ctx, &comments, q, postID); err != nil {
		return nil, fmt.Errorf("error selecting comments: %s", err)
	}

	return comments, nil
}
