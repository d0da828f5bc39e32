// Package web serves the rendered HTML pages of the blog: feeds,
// post forms, profiles and the account pages.
package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"

	yterrs "github.com/dkazarin/yatube/internal/errors"
	"github.com/dkazarin/yatube/internal/media"
	"github.com/dkazarin/yatube/internal/yatube"
)

type (
	// Server renders and serves every page of the site.
	Server struct {
		*http.Server

		repo      yatube.Repository
		media     media.Store
		renderer  *renderer
		pageCache *pageCache

		secureCookie *securecookie.SecureCookie
		httpsCookies bool // Whether or not HTTPS should be used for cookies
	}

	ServerConfig struct {
		Port           int
		CookieHashKey  []byte
		CookieBlockKey []byte
		HttpsCookies   bool
		CacheTTL       time.Duration

		DebugEndpoints bool
	}
)

func NewServer(config ServerConfig, repo yatube.Repository, mediaStore media.Store) (*Server, error) {
	rd, err := newRenderer()
	if err != nil {
		return nil, fmt.Errorf("error loading templates: %w", err)
	}

	ttl := config.CacheTTL
	if ttl == 0 {
		ttl = 20 * time.Second
	}

	srvr := Server{
		repo:         repo,
		media:        mediaStore,
		renderer:     rd,
		pageCache:    newPageCache(ttl),
		secureCookie: securecookie.New(config.CookieHashKey, config.CookieBlockKey),
		httpsCookies: config.HttpsCookies,
	}

	r := errRouter{Router: mux.NewRouter(), srv: &srvr}
	srvr.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		Handler:      handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(r),
	}

	r.Use(accessLogMiddleware) // Log everything
	r.NotFoundHandler = srvr.errHandler(srvr.notFound)

	// Feeds
	r.HandleFuncE("/", srvr.getIndex).Methods(http.MethodGet)
	r.HandleFuncE("/follow/", srvr.getFollowIndex).Methods(http.MethodGet)
	r.HandleFuncE("/group/{slug}/", srvr.getGroupPosts).Methods(http.MethodGet)
	r.HandleFuncE("/profile/{username}/", srvr.getProfile).Methods(http.MethodGet)

	// Posts
	r.HandleFuncE("/create/", srvr.getCreatePost).Methods(http.MethodGet)
	r.HandleFuncE("/create/", srvr.postCreatePost).Methods(http.MethodPost)
	r.HandleFuncE("/posts/{postID:[0-9]+}/", srvr.getPostDetail).Methods(http.MethodGet)
	r.HandleFuncE("/posts/{postID:[0-9]+}/edit/", srvr.getEditPost).Methods(http.MethodGet)
	r.HandleFuncE("/posts/{postID:[0-9]+}/edit/", srvr.postEditPost).Methods(http.MethodPost)
	r.HandleFuncE("/posts/{postID:[0-9]+}/delete/", srvr.postDeletePost).Methods(http.MethodPost)
	r.HandleFuncE("/posts/{postID:[0-9]+}/comment/", srvr.addComment).Methods(http.MethodGet, http.MethodPost)

	// Subscriptions
	r.HandleFuncE("/profile/{username}/follow/", srvr.getProfileFollow).Methods(http.MethodGet)
	r.HandleFuncE("/profile/{username}/unfollow/", srvr.getProfileUnfollow).Methods(http.MethodGet)

	// Accounts
	r.HandleFuncE("/auth/login/", srvr.getLogin).Methods(http.MethodGet)
	r.HandleFuncE("/auth/login/", srvr.postLogin).Methods(http.MethodPost)
	r.HandleFuncE("/auth/logout/", srvr.getLogout).Methods(http.MethodGet)
	r.HandleFuncE("/auth/signup/", srvr.getSignup).Methods(http.MethodGet)
	r.HandleFuncE("/auth/signup/", srvr.postSignup).Methods(http.MethodPost)

	// Uploaded images
	r.PathPrefix("/media/").Handler(mediaStore.Handler("/media/")).Methods(http.MethodGet)

	if config.DebugEndpoints {
		// For operators and local testing
		r.HandleFuncE("/internal/cache/clear", srvr.postCacheClear).Methods(http.MethodPost)
	}

	slog.Debug("configured web server", "port", config.Port)

	return &srvr, nil
}

// handlerFuncE is a modified type of [http.HandlerFunc] that returns an error.
type handlerFuncE func(w http.ResponseWriter, r *http.Request) error

// errHandler is the error boundary: not-found errors render the shared 404
// page, anything else becomes a plain status page.
func (s *Server) errHandler(f handlerFuncE) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := f(w, r)
		if err == nil {
			return
		}

		ytErr := &yterrs.Error{}
		if !errors.As(err, &ytErr) {
			slog.Error("unhandled error", "err", err)
			ytErr = yterrs.E(http.StatusInternalServerError, "internal server error")
		}

		if ytErr.Status == http.StatusNotFound {
			if err := s.renderer.render(w, http.StatusNotFound, "core/404.html", notFoundData{Path: r.URL.Path}); err != nil {
				slog.Error("error rendering 404 page", "err", err)
			}
			return
		}

		http.Error(w, ytErr.Err.Error(), ytErr.Status)
	})
}

// errRouter is a newtype around a mux router that allows attaching handlers that return errors.
type errRouter struct {
	*mux.Router
	srv *Server
}

func (r errRouter) HandleFuncE(path string, f handlerFuncE) *mux.Route {
	return r.Handle(path, r.srv.errHandler(f))
}

type notFoundData struct {
	Path string
}

// Any unmapped path lands here via the router's NotFoundHandler.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request) error {
	return yterrs.E("page not found", http.StatusNotFound)
}

// ClearPageCache drops every cached page render. The next request
// recomputes fresh content.
func (s *Server) ClearPageCache() {
	s.pageCache.Purge()
}

func (s *Server) postCacheClear(w http.ResponseWriter, r *http.Request) error {
	s.ClearPageCache()
	w.WriteHeader(http.StatusNoContent)

	return nil
}
