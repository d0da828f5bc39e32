package sqlite

import (
	"github.com/jmoiron/sqlx"

	"github.com/dkazarin/yatube/internal/yatube"
)

// Ensure Repo implements the Repository interface
var _ yatube.Repository = (*Repo)(nil)

type Repo struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) Repo {
	return Repo{db: db}
}
