package web

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	yterrs "github.com/dkazarin/yatube/internal/errors"
	"github.com/dkazarin/yatube/internal/yatube"
)

// followTarget resolves the profile being (un)followed and the acting user.
func (s *Server) followTarget(w http.ResponseWriter, r *http.Request) (yatube.User, yatube.User, bool, error) {
	usr, ok := s.viewer(r)
	if !ok {
		redirectToLogin(w, r)
		return yatube.User{}, yatube.User{}, false, nil
	}

	author, err := s.repo.UserByUsername(r.Context(), mux.Vars(r)["username"])
	if errors.Is(err, yatube.ErrNotFound) {
		return yatube.User{}, yatube.User{}, false, yterrs.E(err, http.StatusNotFound)
	}
	if err != nil {
		return yatube.User{}, yatube.User{}, false, err
	}

	return author, usr, true, nil
}

func (s *Server) getProfileFollow(w http.ResponseWriter, r *http.Request) error {
	author, usr, ok, err := s.followTarget(w, r)
	if err != nil || !ok {
		return err
	}

	// Self-follows are dropped silently.
	if usr.ID != author.ID {
		if err := s.repo.Follow(r.Context(), usr.ID, author.ID); err != nil {
			return err
		}
	}

	http.Redirect(w, r, "/profile/"+author.Username+"/", http.StatusFound)
	return nil
}

func (s *Server) getProfileUnfollow(w http.ResponseWriter, r *http.Request) error {
	author, usr, ok, err := s.followTarget(w, r)
	if err != nil || !ok {
		return err
	}

	if err := s.repo.Unfollow(r.Context(), usr.ID, author.ID); err != nil {
		return err
	}

	http.Redirect(w, r, "/profile/"+author.Username+"/", http.StatusFound)
	return nil
}
