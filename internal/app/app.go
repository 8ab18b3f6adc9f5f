// Package app wires the collaborator client, durable storage, the session
// store and the dashboard shell together for the binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/jrsteele09/ular-tangga-admin/api"
	"github.com/jrsteele09/ular-tangga-admin/internal/config"
	"github.com/jrsteele09/ular-tangga-admin/session"
	"github.com/jrsteele09/ular-tangga-admin/shell"
	"github.com/jrsteele09/ular-tangga-admin/storage"
	"github.com/jrsteele09/ular-tangga-admin/storage/memory"
	"github.com/jrsteele09/ular-tangga-admin/storage/sqlite"
	"github.com/rs/zerolog"
)

type App struct {
	Config  config.Config
	Logger  zerolog.Logger
	Client  *api.Client
	Storage storage.Store
	Session *session.Store
	Shell   *shell.Shell

	closeStorage func() error
}

// NewLogger builds the process logger. DEV gets the human readable console
// writer, everything else logs JSON.
func NewLogger(cfg config.EnvConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.GetLogLevel()))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	if cfg.GetEnv() == "DEV" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Str("app", cfg.GetAppName()).Logger()
}

// OpenStorage opens the configured backend. The returned func releases it.
func OpenStorage(cfg config.StorageConfig) (storage.Store, func() error, error) {
	switch cfg.GetStorageBackend() {
	case config.StorageBackendMemory:
		return memory.New(), func() error { return nil }, nil
	default:
		db, err := sqlite.Open(cfg.GetStoragePath())
		if err != nil {
			return nil, nil, fmt.Errorf("[app OpenStorage] %w", err)
		}
		return db, db.Close, nil
	}
}

// New builds the object graph without touching the network. Call Start to
// restore the persisted session.
func New(cfg config.Config, logger zerolog.Logger, userAgent string) (*App, error) {
	store, closeStorage, err := OpenStorage(cfg)
	if err != nil {
		return nil, err
	}

	client := api.New(cfg.GetAPIBaseURL(),
		api.WithLogger(logger.With().Str("component", "api").Logger()),
		api.WithUserAgent(userAgent),
	)

	a := &App{
		Config:       cfg,
		Logger:       logger,
		Client:       client,
		Storage:      store,
		closeStorage: closeStorage,
	}
	a.Session, a.Shell = a.BuildSession(store)
	return a, nil
}

// BuildSession creates a session store over st and the dashboard shell
// reading it. The process session uses the raw backend; each web visitor
// gets a namespaced view of it.
func (a *App) BuildSession(st storage.Store) (*session.Store, *shell.Shell) {
	sess := session.New(a.Client, st,
		session.WithLogger(a.Logger.With().Str("component", "session").Logger()),
		session.WithLocale(a.Config.GetLocale()),
	)
	sh := shell.New(sess, a.Client,
		shell.WithLogger(a.Logger.With().Str("component", "shell").Logger()),
		shell.WithLocale(a.Config.GetLocale()),
	)
	return sess, sh
}

// Start loads and verifies the persisted session
func (a *App) Start(ctx context.Context) {
	a.Session.Start(ctx)
}

// Close stops the session store and releases storage
func (a *App) Close() error {
	a.Session.Stop()
	if a.closeStorage == nil {
		return nil
	}
	if err := a.closeStorage(); err != nil {
		return fmt.Errorf("[app Close] %w", err)
	}
	return nil
}
