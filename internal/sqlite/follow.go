package sqlite

import (
	"context"
	"fmt"
)

func (r Repo) Follow(ctx context.Context, followerID int64, authorID int64) error {
	const q = `INSERT OR IGNORE INTO follows (follower_id, author_id) VALUES (?, ?);`

	if _, err := r.db.ExecContext(ctx, q, followerID, authorID); err != nil {
		return fmt.Errorf("error creating follow: %w", err)
	}

	return nil
}

func (r Repo) Unfollow(ctx context.Context, followerID int64, authorID int64) error {
	const q = `DELETE FROM follows WHERE follower_id = ? AND author_id = ?;`

	if _, err := r.db.ExecContext(ctx, q, followerID, authorID); err != nil {
		return fmt.Errorf("error deleting follow: %w", err)
	}

	return nil
}

func (r Repo) Follows(ctx context.Context, followerID int64, authorID int64) (bool, error) {
	const q = `SELECT COUNT(*) FROM follows WHERE follower_id = ? AND author_id = ?;`

	var count int
	if err := r.db.GetContext(ctx, &count, q, followerID, authorID); err != nil {
		return false, fmt.Errorf("error selecting follow: %s", err)
	}

	return count > 0, nil
}
