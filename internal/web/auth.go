package web

import (
	"errors"
	"net/http"
	"strings"

	goaway "github.com/TwiN/go-away"
	"golang.org/x/crypto/bcrypt"

	yterrs "github.com/dkazarin/yatube/internal/errors"
	"github.com/dkazarin/yatube/internal/yatube"
)

type loginData struct {
	Next  string
	Error string
}

func (s *Server) getLogin(w http.ResponseWriter, r *http.Request) error {
	return s.renderer.render(w, http.StatusOK, "users/login.html", loginData{
		Next: r.URL.Query().Get("next"),
	})
}

func (s *Server) postLogin(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return yterrs.E(err, http.StatusBadRequest)
	}
	var (
		username = r.PostFormValue("username")
		password = r.PostFormValue("password")
		next     = r.PostFormValue("next")
	)

	usr, err := s.repo.UserByUsername(r.Context(), username)
	if err != nil && !errors.Is(err, yatube.ErrNotFound) {
		return err
	}
	if errors.Is(err, yatube.ErrNotFound) ||
		bcrypt.CompareHashAndPassword([]byte(usr.PasswordHash), []byte(password)) != nil {
		return s.renderer.render(w, http.StatusOK, "users/login.html", loginData{
			Next:  next,
			Error: "wrong username or password",
		})
	}

	setSession(w, s.secureCookie, s.httpsCookies, sessionState{UserID: usr.ID})

	// Only ever bounce within the site.
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	http.Redirect(w, r, next, http.StatusFound)
	return nil
}

func (s *Server) getLogout(w http.ResponseWriter, r *http.Request) error {
	setSession(w, s.secureCookie, s.httpsCookies, sessionState{})
	http.Redirect(w, r, "/", http.StatusFound)

	return nil
}

type signupData struct {
	Error string
}

func (s *Server) getSignup(w http.ResponseWriter, r *http.Request) error {
	return s.renderer.render(w, http.StatusOK, "users/signup.html", signupData{})
}

func (s *Server) postSignup(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return yterrs.E(err, http.StatusBadRequest)
	}
	var (
		username = strings.TrimSpace(r.PostFormValue("username"))
		password = r.PostFormValue("password")
	)

	if msg := validateSignup(username, password); msg != "" {
		return s.renderer.render(w, http.StatusOK, "users/signup.html", signupData{Error: msg})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	usr, err := s.repo.CreateUser(r.Context(), username, string(hash))
	if errors.Is(err, yatube.ErrConflict) {
		return s.renderer.render(w, http.StatusOK, "users/signup.html", signupData{
			Error: "username is taken",
		})
	}
	if err != nil {
		return err
	}

	setSession(w, s.secureCookie, s.httpsCookies, sessionState{UserID: usr.ID})
	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

func validateSignup(username, password string) string {
	switch {
	case username == "":
		return "username is required"
	case strings.ContainsAny(username, " /?#"):
		return "username contains invalid characters"
	case goaway.IsProfane(username):
		return "pick a different username"
	case len(password) < 8:
		return "password must be at least 8 characters"
	default:
		return ""
	}
}
