package media

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uploadRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if filename != "" {
		fw, err := mw.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/create/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req
}

func TestSaveUpload(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	path, err := store.SaveUpload(uploadRequest(t, "image", "small.gif", []byte("gif bytes")), "image")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "posts/"))
	assert.True(t, strings.HasSuffix(path, ".gif"))

	byts, err := os.ReadFile(filepath.Join(root, path))
	require.NoError(t, err)
	assert.Equal(t, []byte("gif bytes"), byts)
}

func TestSaveUpload_MissingFileIsNotAnError(t *testing.T) {
	store := NewStore(t.TempDir())

	path, err := store.SaveUpload(uploadRequest(t, "image", "", nil), "image")
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestHandlerServesStoredFiles(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root)

	path, err := store.SaveUpload(uploadRequest(t, "image", "pic.png", []byte("png bytes")), "image")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/media/"+path, nil)
	store.Handler("/media/").ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png bytes", rec.Body.String())
}
