package yatube

import (
	"context"
	"time"
)

type UserService interface {
	CreateUser(ctx context.Context, username string, passwordHash string) (User, error)
	User(ctx context.Context, id int64) (User, error)
	UserByUsername(ctx context.Context, username string) (User, error)
}

type User struct {
	ID           int64     `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
