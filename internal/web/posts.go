package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	goaway "github.com/TwiN/go-away"
	"github.com/gorilla/mux"

	yterrs "github.com/dkazarin/yatube/internal/errors"
	"github.com/dkazarin/yatube/internal/yatube"
)

const (
	maxPostLength  = 10000
	maxUploadBytes = 10 << 20
)

func postID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["postID"], 10, 64)
	if err != nil {
		return 0, yterrs.E(err, http.StatusNotFound)
	}

	return id, nil
}

// postForm is the submitted create/edit form plus whatever validation
// problems it has, for re-rendering.
type postForm struct {
	Text   string
	Group  int64 // selected group id, 0 when none
	Errors []yterrs.Detail
}

func (f *postForm) validate() bool {
	if strings.TrimSpace(f.Text) == "" {
		f.Errors = append(f.Errors, yterrs.Detail{Field: "text", Error: "text is required"})
	}
	if len(f.Text) > maxPostLength {
		f.Errors = append(f.Errors, yterrs.Detail{Field: "text", Error: "text is too long"})
	}
	if goaway.IsProfane(f.Text) {
		f.Errors = append(f.Errors, yterrs.Detail{Field: "text", Error: "watch your language"})
	}

	return len(f.Errors) == 0
}

// parsePostForm handles both plain and multipart submissions; the image
// field only ever arrives via multipart.
func parsePostForm(r *http.Request) (postForm, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/") {
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			return postForm{}, yterrs.E(err, http.StatusBadRequest)
		}
	} else if err := r.ParseForm(); err != nil {
		return postForm{}, yterrs.E(err, http.StatusBadRequest)
	}

	form := postForm{Text: r.PostFormValue("text")}
	if raw := r.PostFormValue("group"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return postForm{}, yterrs.E(err, http.StatusBadRequest)
		}
		form.Group = id
	}

	return form, nil
}

type postDetailData struct {
	Post     yatube.Post
	Comments []yatube.Comment
	CanEdit  bool
}

func (s *Server) getPostDetail(w http.ResponseWriter, r *http.Request) error {
	id, err := postID(r)
	if err != nil {
		return err
	}

	post, err := s.repo.Post(r.Context(), id)
	if errors.Is(err, yatube.ErrNotFound) {
		return yterrs.E(err, http.StatusNotFound)
	}
	if err != nil {
		return err
	}

	comments, err := s.repo.PostComments(r.Context(), id)
	if err != nil {
		return err
	}

	usr, ok := s.viewer(r)

	return s.renderer.render(w, http.StatusOK, "posts/post_detail.html", postDetailData{
		Post:     post,
		Comments: comments,
		CanEdit:  ok && usr.ID == post.AuthorID,
	})
}

type postFormData struct {
	Form   postForm
	Groups []yatube.Group
	IsEdit bool
}

func (s *Server) getCreatePost(w http.ResponseWriter, r *http.Request) error {
	if _, ok := s.viewer(r); !ok {
		redirectToLogin(w, r)
		return nil
	}

	groups, err := s.repo.AllGroups(r.Context())
	if err != nil {
		return err
	}

	return s.renderer.render(w, http.StatusOK, "posts/create_post.html", postFormData{Groups: groups})
}

func (s *Server) postCreatePost(w http.ResponseWriter, r *http.Request) error {
	usr, ok := s.viewer(r)
	if !ok {
		redirectToLogin(w, r)
		return nil
	}

	form, err := parsePostForm(r)
	if err != nil {
		return err
	}
	groups, err := s.repo.AllGroups(r.Context())
	if err != nil {
		return err
	}
	if !form.validate() {
		return s.renderer.render(w, http.StatusOK, "posts/create_post.html", postFormData{
			Form:   form,
			Groups: groups,
		})
	}

	image, err := s.media.SaveUpload(r, "image")
	if err != nil {
		return err
	}

	post := yatube.Post{
		Text:     form.Text,
		AuthorID: usr.ID,
		Image:    image,
	}
	if form.Group != 0 {
		post.GroupID = &form.Group
	}
	if _, err := s.repo.InsertPost(r.Context(), post); err != nil {
		return err
	}

	http.Redirect(w, r, "/profile/"+usr.Username+"/", http.StatusFound)
	return nil
}

// loadOwnPost fetches the post behind an edit or delete request and applies
// the ownership rules: guests go to login, non-owners get bounced to the
// read-only detail view. The bool reports whether the caller should carry on.
func (s *Server) loadOwnPost(w http.ResponseWriter, r *http.Request) (yatube.Post, yatube.User, bool, error) {
	id, err := postID(r)
	if err != nil {
		return yatube.Post{}, yatube.User{}, false, err
	}

	usr, ok := s.viewer(r)
	if !ok {
		redirectToLogin(w, r)
		return yatube.Post{}, yatube.User{}, false, nil
	}

	post, err := s.repo.Post(r.Context(), id)
	if errors.Is(err, yatube.ErrNotFound) {
		return yatube.Post{}, yatube.User{}, false, yterrs.E(err, http.StatusNotFound)
	}
	if err != nil {
		return yatube.Post{}, yatube.User{}, false, err
	}
	if usr.ID != post.AuthorID {
		http.Redirect(w, r, fmt.Sprintf("/posts/%d/", post.ID), http.StatusFound)
		return yatube.Post{}, yatube.User{}, false, nil
	}

	return post, usr, true, nil
}

func (s *Server) getEditPost(w http.ResponseWriter, r *http.Request) error {
	post, _, ok, err := s.loadOwnPost(w, r)
	if err != nil || !ok {
		return err
	}

	groups, err := s.repo.AllGroups(r.Context())
	if err != nil {
		return err
	}

	form := postForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = *post.GroupID
	}

	return s.renderer.render(w, http.StatusOK, "posts/create_post.html", postFormData{
		Form:   form,
		Groups: groups,
		IsEdit: true,
	})
}

func (s *Server) postEditPost(w http.ResponseWriter, r *http.Request) error {
	post, _, ok, err := s.loadOwnPost(w, r)
	if err != nil || !ok {
		return err
	}

	form, err := parsePostForm(r)
	if err != nil {
		return err
	}
	groups, err := s.repo.AllGroups(r.Context())
	if err != nil {
		return err
	}
	if !form.validate() {
		return s.renderer.render(w, http.StatusOK, "posts/create_post.html", postFormData{
			Form:   form,
			Groups: groups,
			IsEdit: true,
		})
	}

	image, err := s.media.SaveUpload(r, "image")
	if err != nil {
		return err
	}

	args := yatube.UpdatePostArgs{
		Text:  form.Text,
		Image: image,
	}
	if form.Group != 0 {
		args.GroupID = &form.Group
	}
	if err := s.repo.UpdatePost(r.Context(), post.ID, args); err != nil {
		return err
	}

	http.Redirect(w, r, fmt.Sprintf("/posts/%d/", post.ID), http.StatusFound)
	return nil
}

func (s *Server) postDeletePost(w http.ResponseWriter, r *http.Request) error {
	post, usr, ok, err := s.loadOwnPost(w, r)
	if err != nil || !ok {
		return err
	}

	if err := s.repo.DeletePost(r.Context(), post.ID); err != nil {
		return err
	}

	http.Redirect(w, r, "/profile/"+usr.Username+"/", http.StatusFound)
	return nil
}
