package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/securecookie"

	"github.com/dkazarin/yatube/internal/yatube"
)

const sessionCookieName = "yatube_session"

// Describes a user's sessionState that's persisted to their cookie.
type sessionState struct {
	UserID int64
}

// Fetches the current session tied to the request.
func session(r *http.Request, secureCookie *securecookie.SecureCookie) sessionState {
	cookie, err := r.Cookie(sessionCookieName)
	if errors.Is(err, http.ErrNoCookie) {
		return sessionState{}
	}
	if err != nil {
		slog.Error("error fetching cookie", "err", err)
		return sessionState{}
	}

	value := sessionState{}
	if err := secureCookie.Decode(sessionCookieName, cookie.Value, &value); err != nil {
		slog.Error("error decoding cookie", "err", err)
		return sessionState{}
	}

	return value
}

// Sets the session on the request.
func setSession(w http.ResponseWriter, secureCookie *securecookie.SecureCookie, https bool, sess sessionState) {
	encoded, err := secureCookie.Encode(sessionCookieName, sess)
	if err != nil {
		slog.Error("error encoding cookie", "err", err)
		return
	}

	cookie := &http.Cookie{
		Name:     sessionCookieName,
		Value:    encoded,
		Path:     "/",
		Secure:   https,
		HttpOnly: true,
	}
	http.SetCookie(w, cookie)
}

// viewer resolves the acting user from the request's session cookie. The
// second return is false for guests or stale sessions.
func (s *Server) viewer(r *http.Request) (yatube.User, bool) {
	state := session(r, s.secureCookie)
	if state.UserID == 0 {
		return yatube.User{}, false
	}

	usr, err := s.repo.User(r.Context(), state.UserID)
	if errors.Is(err, yatube.ErrNotFound) {
		return yatube.User{}, false
	}
	if err != nil {
		slog.Error("error loading session user", "err", err)
		return yatube.User{}, false
	}

	return usr, true
}

// Guests hitting a mutating page get bounced to login with the original
// destination carried in the next parameter.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/auth/login/?next="+r.URL.Path, http.StatusFound)
}
