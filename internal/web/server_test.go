package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/dkazarin/yatube/internal/media"
	"github.com/dkazarin/yatube/internal/migrations"
	"github.com/dkazarin/yatube/internal/sqlite"
	"github.com/dkazarin/yatube/internal/yatube"
)

const testPassword = "correct horse battery"

func newTestServer(t *testing.T) (*Server, sqlite.Repo) {
	t.Helper()

	dbx, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// An in-memory database exists per connection.
	dbx.SetMaxOpenConns(1)
	t.Cleanup(func() { dbx.Close() })
	require.NoError(t, migrations.Run(dbx))

	repo := sqlite.New(dbx)
	srv, err := NewServer(ServerConfig{
		CookieHashKey:  []byte("very-secret-hash-key-of-32-bytes"),
		CacheTTL:       time.Minute,
		DebugEndpoints: true,
	}, repo, media.NewStore(t.TempDir()))
	require.NoError(t, err)

	return srv, repo
}

// do routes a request through the full middleware stack.
func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)

	return rec
}

func get(t *testing.T, srv *Server, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	return do(t, srv, req)
}

func doPostForm(t *testing.T, srv *Server, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	return do(t, srv, req)
}

func multipartRequest(t *testing.T, path string, buf io.Reader, contentType string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, buf)
	req.Header.Set("Content-Type", contentType)

	return req
}

func createUser(t *testing.T, repo sqlite.Repo, username string) yatube.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	usr, err := repo.CreateUser(t.Context(), username, string(hash))
	require.NoError(t, err)

	return usr
}

func createGroup(t *testing.T, repo sqlite.Repo, slug string) yatube.Group {
	t.Helper()

	group, err := repo.CreateGroup(t.Context(), yatube.Group{
		Slug:        slug,
		Title:       "Group " + slug,
		Description: "a group for testing",
	})
	require.NoError(t, err)

	return group
}

func createPost(t *testing.T, repo sqlite.Repo, author yatube.User, groupID *int64, text string) yatube.Post {
	t.Helper()

	post, err := repo.InsertPost(t.Context(), yatube.Post{
		Text:     text,
		AuthorID: author.ID,
		GroupID:  groupID,
	})
	require.NoError(t, err)

	return post
}

// sessionCookie forges a logged-in session the same way the login handler does.
func sessionCookie(t *testing.T, srv *Server, usr yatube.User) *http.Cookie {
	t.Helper()

	encoded, err := srv.secureCookie.Encode(sessionCookieName, sessionState{UserID: usr.ID})
	require.NoError(t, err)

	return &http.Cookie{Name: sessionCookieName, Value: encoded}
}

func body(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	return rec.Body.String()
}

// usedTemplate reports which page template produced the response.
func usedTemplate(t *testing.T, rec *httptest.ResponseRecorder, name string) bool {
	t.Helper()

	return strings.Contains(body(t, rec), `data-template="`+name+`"`)
}
