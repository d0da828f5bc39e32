package web

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goaway "github.com/TwiN/go-away"

	yterrs "github.com/dkazarin/yatube/internal/errors"
	"github.com/dkazarin/yatube/internal/yatube"
)

func (s *Server) addComment(w http.ResponseWriter, r *http.Request) error {
	id, err := postID(r)
	if err != nil {
		return err
	}

	usr, ok := s.viewer(r)
	if !ok {
		redirectToLogin(w, r)
		return nil
	}

	post, err := s.repo.Post(r.Context(), id)
	if errors.Is(err, yatube.ErrNotFound) {
		return yterrs.E(err, http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	detailURL := fmt.Sprintf("/posts/%d/", post.ID)

	// A GET from an authenticated user has nothing to submit.
	if r.Method == http.MethodGet {
		http.Redirect(w, r, detailURL, http.StatusFound)
		return nil
	}

	if err := r.ParseForm(); err != nil {
		return yterrs.E(err, http.StatusBadRequest)
	}
	text := r.PostFormValue("text")
	if strings.TrimSpace(text) == "" || goaway.IsProfane(text) {
		// Invalid comments create nothing; back to the post.
		http.Redirect(w, r, detailURL, http.StatusFound)
		return nil
	}

	if _, err := s.repo.InsertComment(r.Context(), yatube.Comment{
		PostID:   post.ID,
		AuthorID: usr.ID,
		Text:     text,
	}); err != nil {
		return err
	}

	http.Redirect(w, r, detailURL, http.StatusFound)
	return nil
}
