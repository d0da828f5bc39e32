package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dkazarin/yatube/internal/yatube"
)

func (r Repo) CreateUser(ctx context.Context, username string, passwordHash string) (yatube.User, error) {
	const q = `INSERT INTO users (username, password_hash) VALUES (?, ?);`

	res, err := r.db.ExecContext(ctx, q, username, passwordHash)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return yatube.User{}, yatube.ErrConflict
	}
	if err != nil {
		return yatube.User{}, fmt.Errorf("error inserting user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return yatube.User{}, fmt.Errorf("error reading inserted user id: %w", err)
	}

	return r.User(ctx, id)
}

func (r Repo) User(ctx context.Context, id int64) (yatube.User, error) {
	const q = `SELECT * FROM users WHERE id = ?;`

	var usr yatube.User
	err := r.db.GetContext(ctx, &usr, q, id)
	if errors.Is(err, sql.ErrNoRows) {
		return yatube.User{}, yatube.ErrNotFound
	}
	if err != nil {
		return yatube.User{}, err
	}

	return usr, nil
}

func (r Repo) UserByUsername(ctx context.Context, username string) (yatube.User, error) {
	const q = `SELECT * FROM users WHERE username = ?;`

	var usr yatube.User
	err := r.db.GetContext(ctx, &usr, q, username)
	if errors.Is(err, sql.ErrNoRows) {
		return yatube.User{}, yatube.ErrNotFound
	}
	if err != nil {
		return yatube.User{}, err
	}

	return usr, nil
}
