package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dkazarin/yatube/internal/yatube"
)

func (r Repo) CreateGroup(ctx context.Context, group yatube.Group) (yatube.Group, error) {
	const q = `INSERT INTO groups (slug, title, description) VALUES (?, ?, ?);`

	_, err := r.db.ExecContext(ctx, q, group.Slug, group.Title, group.Description)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return yatube.Group{}, yatube.ErrConflict
	}
	if err != nil {
		return yatube.Group{}, fmt.Errorf("error inserting group: %w", err)
	}

	return r.GroupBySlug(ctx, group.Slug)
}

func (r Repo) GroupBySlug(ctx context.Context, slug string) (yatube.Group, error) {
	const q = `SELECT * FROM groups WHERE slug = ?;`

	var group yatube.Group
	err := r.db.GetContext(ctx, &group, q, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return yatube.Group{}, yatube.ErrNotFound
	}
	if err != nil {
		return yatube.Group{}, err
	}

	return group, nil
}

func (r Repo) AllGroups(ctx context.Context) ([]yatube.Group, error) {
	const q = `SELECT * FROM groups ORDER BY title;`

	var groups []yatube.Group
	if err := r.db.SelectContext(ctx, &groups, q); err != nil {
		return nil, fmt.Errorf("error selecting groups: %s", err)
	}

	return groups, nil
}
