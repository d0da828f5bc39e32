// Yatube is a small blog platform.
//
// Users write posts, file them under groups, comment on each other's
// posts and follow authors to build a personal feed.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sethvargo/go-envconfig"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/dkazarin/yatube/internal/media"
	"github.com/dkazarin/yatube/internal/migrations"
	"github.com/dkazarin/yatube/internal/sqlite"
	"github.com/dkazarin/yatube/internal/web"
	"github.com/dkazarin/yatube/logger"
)

type config struct {
	Database string `env:"DATABASE, required"`
	MediaDir string `env:"MEDIA_DIR, default=media"`

	Port           int           `env:"PORT, default=8000"`
	HTTPSCookies   bool          `env:"HTTPS_COOKIES, default=false"`
	CookieHashKey  string        `env:"COOKIE_HASH_KEY, required"`
	CookieBlockKey string        `env:"COOKIE_BLOCK_KEY"`
	CacheTTL       time.Duration `env:"CACHE_TTL, default=20s"`
	DebugEndpoints bool          `env:"DEBUG_ENDPOINTS, default=false"`

	// Which format to use for logging: either text or json
	LoggerFormat string `env:"LOGGER_FORMAT, default=text"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Parse the config
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("error parsing config: %s", err)
	}

	// Determine which logger format to use
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, nil)
	if cfg.LoggerFormat == "json" {
		handler = slog.NewJSONHandler(os.Stderr, nil)
	}
	l := slog.New(logger.NewContextHandler(handler))
	slog.SetDefault(l)

	// Start the application
	if err := run(ctx, cfg); err != nil {
		slog.Error("error running", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	slog.Info("running", "port", cfg.Port, "database", cfg.Database)

	// Connect to the db
	dbx, err := sqlx.Open("sqlite", fmt.Sprintf("%s?_txlock=immediate&_journal_mode=WAL&_busy_timeout=5000", cfg.Database))
	if err != nil {
		return fmt.Errorf("error opening database: %s", err)
	}
	defer dbx.Close()

	// Migrate, always. Retried since the file can be briefly locked by a
	// previous instance during a rolling restart.
	if err := retry.Fibonacci(ctx, 1*time.Second, func(ctx context.Context) error {
		if err := migrations.Run(dbx); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("error migrating: %s", err)
	}

	repo := sqlite.New(dbx)
	mediaStore := media.NewStore(cfg.MediaDir)

	s, err := web.NewServer(web.ServerConfig{
		Port:           cfg.Port,
		CookieHashKey:  []byte(cfg.CookieHashKey),
		CookieBlockKey: blockKey(cfg.CookieBlockKey),
		HttpsCookies:   cfg.HTTPSCookies,
		CacheTTL:       cfg.CacheTTL,
		DebugEndpoints: cfg.DebugEndpoints,
	}, repo, mediaStore)
	if err != nil {
		return fmt.Errorf("error creating server: %s", err)
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Start the server
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error listening: %s", err)
		}

		return nil
	})
	g.Go(func() error {
		// Block from shutting down until the group is canceled
		<-gCtx.Done()

		downCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(downCtx); err != nil {
			slog.Error("error shutting down server", "error", err)
		}

		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("error running: %s", err)
	}

	return nil
}

// securecookie treats a nil block key as "no encryption", which is fine
// for local runs.
func blockKey(key string) []byte {
	if key == "" {
		return nil
	}
	return []byte(key)
}
