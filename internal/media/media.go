// Package media stores uploaded post images on disk and hands back the
// relative path that gets persisted on the post.
package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

type Store struct {
	root string
}

func NewStore(root string) Store {
	return Store{root: root}
}

// SaveUpload reads the named multipart file from the request and writes it
// under the store root. Returns the media-relative path, or "" when the
// field was left empty.
func (s Store) SaveUpload(r *http.Request, field string) (string, error) {
	file, header, err := r.FormFile(field)
	// Plain form posts carry no file part at all.
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("error reading upload: %w", err)
	}
	defer file.Close()

	return s.save(file, filepath.Ext(header.Filename))
}

func (s Store) save(src multipart.File, ext string) (string, error) {
	dir := filepath.Join(s.root, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("error creating media dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("error creating media file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("error writing media file: %w", err)
	}

	return filepath.Join("posts", name), nil
}

// Handler serves stored files under the given URL prefix.
func (s Store) Handler(prefix string) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(http.Dir(s.root)))
}
