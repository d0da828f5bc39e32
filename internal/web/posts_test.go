package web

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkazarin/yatube/internal/yatube"
)

// A one-pixel GIF, enough to exercise the upload path.
var smallGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x02, 0x00,
	0x01, 0x00, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xFF, 0xFF, 0xFF, 0x21, 0xF9, 0x04, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x2C, 0x00, 0x00, 0x00, 0x00,
	0x02, 0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x0C,
	0x0A, 0x00, 0x3B,
}

func TestCreatePost(t *testing.T) {
	srv, repo := newTestServer(t)
	var (
		author = createUser(t, repo, "hasnoname")
		group  = createGroup(t, repo, "test-slug")
		cookie = sessionCookie(t, srv, author)
	)

	before, err := repo.CountPosts(t.Context(), yatube.ListPostsArgs{})
	require.NoError(t, err)

	rec := doPostForm(t, srv, "/create/", url.Values{
		"text":  {"a freshly created post"},
		"group": {strconv.FormatInt(group.ID, 10)},
	}, cookie)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profile/hasnoname/", rec.Header().Get("Location"))

	after, err := repo.CountPosts(t.Context(), yatube.ListPostsArgs{})
	require.NoError(t, err)
	assert.Equal(t, before+1, after)

	posts, err := repo.ListPosts(t.Context(), yatube.ListPostsArgs{GroupSlug: "test-slug"})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "a freshly created post", posts[0].Text)
}

func TestCreatePost_InvalidFormLeavesStoreUnchanged(t *testing.T) {
	srv, repo := newTestServer(t)
	author := createUser(t, repo, "hasnoname")
	cookie := sessionCookie(t, srv, author)

	for name, text := range map[string]string{
		"empty":     "   ",
		"profanity": "well fuck this then",
	} {
		t.Run(name, func(t *testing.T) {
			rec := doPostForm(t, srv, "/create/", url.Values{"text": {text}}, cookie)

			// The form re-renders with its errors instead of redirecting.
			require.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, usedTemplate(t, rec, "posts/create_post.html"))
			assert.Contains(t, body(t, rec), "form-error")

			total, err := repo.CountPosts(t.Context(), yatube.ListPostsArgs{})
			require.NoError(t, err)
			assert.Zero(t, total)
		})
	}
}

func TestEditPost(t *testing.T) {
	srv, repo := newTestServer(t)
	var (
		author = createUser(t, repo, "hasnoname")
		post   = createPost(t, repo, author, nil, "original text")
		cookie = sessionCookie(t, srv, author)
	)

	rec := doPostForm(t, srv, fmt.Sprintf("/posts/%d/edit/", post.ID), url.Values{
		"text": {"edited text"},
	}, cookie)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%d/", post.ID), rec.Header().Get("Location"))

	got, err := repo.Post(t.Context(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited text", got.Text)
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, author.ID, got.AuthorID)
}

func TestDeletePost(t *testing.T) {
	srv, repo := newTestServer(t)
	var (
		author = createUser(t, repo, "hasnoname")
		post   = createPost(t, repo, author, nil, "doomed post")
		cookie = sessionCookie(t, srv, author)
	)

	rec := doPostForm(t, srv, fmt.Sprintf("/posts/%d/delete/", post.ID), url.Values{}, cookie)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/profile/hasnoname/", rec.Header().Get("Location"))

	_, err := repo.Post(t.Context(), post.ID)
	assert.ErrorIs(t, err, yatube.ErrNotFound)

	// Gone from the profile feed right away.
	assert.NotContains(t, body(t, get(t, srv, "/profile/hasnoname/")), "doomed post")
}

func TestCreatePostWithImage(t *testing.T) {
	srv, repo := newTestServer(t)
	var (
		author = createUser(t, repo, "hasnoname")
		group  = createGroup(t, repo, "test-slug")
		cookie = sessionCookie(t, srv, author)
	)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("text", "a post with an image"))
	require.NoError(t, mw.WriteField("group", strconv.FormatInt(group.ID, 10)))
	fw, err := mw.CreateFormFile("image", "small.gif")
	require.NoError(t, err)
	_, err = fw.Write(smallGIF)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := multipartRequest(t, "/create/", &buf, mw.FormDataContentType())
	req.AddCookie(cookie)
	rec := do(t, srv, req)
	require.Equal(t, http.StatusFound, rec.Code)

	posts, err := repo.ListPosts(t.Context(), yatube.ListPostsArgs{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	image := posts[0].Image
	require.NotEmpty(t, image)
	require.True(t, strings.HasPrefix(image, "posts/"))

	// The same image path shows up in every context the post renders in.
	pages := []string{
		"/",
		"/group/test-slug/",
		"/profile/hasnoname/",
		fmt.Sprintf("/posts/%d/", posts[0].ID),
	}
	for _, path := range pages {
		assert.Contains(t, body(t, get(t, srv, path)), "/media/"+image, "on %s", path)
	}

	// And the file itself is retrievable.
	imgRec := get(t, srv, "/media/"+image)
	require.Equal(t, http.StatusOK, imgRec.Code)
	assert.Equal(t, smallGIF, imgRec.Body.Bytes())
}

func TestPostDetailSanitizesText(t *testing.T) {
	srv, repo := newTestServer(t)
	author := createUser(t, repo, "hasnoname")
	post := createPost(t, repo, author, nil, `hello <script>alert("xss")</script> world`)

	b := body(t, get(t, srv, fmt.Sprintf("/posts/%d/", post.ID)))

	assert.Contains(t, b, "hello")
	assert.NotContains(t, b, "<script>")
}
