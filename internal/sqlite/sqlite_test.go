package sqlite

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/dkazarin/yatube/internal/migrations"
	"github.com/dkazarin/yatube/internal/yatube"
)

func newTestRepo(t *testing.T) Repo {
	t.Helper()

	dbx, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// An in-memory database exists per connection.
	dbx.SetMaxOpenConns(1)
	t.Cleanup(func() { dbx.Close() })

	require.NoError(t, migrations.Run(dbx))

	return New(dbx)
}

func mustUser(t *testing.T, r Repo, username string) yatube.User {
	t.Helper()

	usr, err := r.CreateUser(t.Context(), username, "hash")
	require.NoError(t, err)

	return usr
}

func mustGroup(t *testing.T, r Repo, slug string) yatube.Group {
	t.Helper()

	group, err := r.CreateGroup(t.Context(), yatube.Group{
		Slug:        slug,
		Title:       "Group " + slug,
		Description: "a group for testing",
	})
	require.NoError(t, err)

	return group
}

func mustPost(t *testing.T, r Repo, author yatube.User, groupID *int64, text string) yatube.Post {
	t.Helper()

	post, err := r.InsertPost(t.Context(), yatube.Post{
		Text:     text,
		AuthorID: author.ID,
		GroupID:  groupID,
	})
	require.NoError(t, err)

	return post
}
