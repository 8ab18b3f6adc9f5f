package app_test

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/ular-tangga-admin/api"
	"github.com/jrsteele09/ular-tangga-admin/api/apitest"
	"github.com/jrsteele09/ular-tangga-admin/internal/app"
	"github.com/jrsteele09/ular-tangga-admin/internal/config"
	"github.com/jrsteele09/ular-tangga-admin/storage"
	"github.com/jrsteele09/ular-tangga-admin/storage/memory"
	"github.com/jrsteele09/ular-tangga-admin/storage/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name      string
		env       string
		level     string
		wantDebug bool
		wantJSON  bool
	}{
		{name: "prod info", env: "PROD", level: "info", wantDebug: false, wantJSON: true},
		{name: "prod debug", env: "PROD", level: "DEBUG", wantDebug: true, wantJSON: true},
		{name: "bad level falls back to info", env: "PROD", level: "loud", wantDebug: false, wantJSON: true},
		{name: "dev console", env: "DEV", level: "debug", wantDebug: true, wantJSON: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ENV", tt.env)
			t.Setenv("LOG_LEVEL", tt.level)
			cfg, err := config.New()
			require.NoError(t, err)

			var buf bytes.Buffer
			logger := app.NewLogger(cfg, &buf)
			logger.Debug().Msg("debug line")
			logger.Info().Msg("info line")

			out := buf.String()
			assert.Contains(t, out, "info line")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte("debug line")))
			assert.Equal(t, tt.wantJSON, bytes.HasPrefix(buf.Bytes(), []byte("{")))
		})
	}
}

func TestOpenStorage(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", config.StorageBackendMemory)
		cfg, err := config.New()
		require.NoError(t, err)

		store, closeFn, err := app.OpenStorage(cfg)
		require.NoError(t, err)
		assert.IsType(t, &memory.Store{}, store)
		assert.NoError(t, closeFn())
	})

	t.Run("sqlite", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", config.StorageBackendSQLite)
		t.Setenv("FOLDER", filepath.Join(t.TempDir(), "nested"))
		cfg, err := config.New()
		require.NoError(t, err)

		store, closeFn, err := app.OpenStorage(cfg)
		require.NoError(t, err)
		assert.IsType(t, &sqlite.Store{}, store)
		assert.FileExists(t, cfg.GetStoragePath())
		assert.NoError(t, closeFn())
	})
}

func TestAppSessionSurvivesRestart(t *testing.T) {
	fake := apitest.NewServer()
	t.Cleanup(fake.Close)
	fake.AddAccount(apitest.Account{Name: "Admin Ular", Email: "admin@ular.id", Password: "rahasia"})

	t.Setenv("API_BASE_URL", fake.URL)
	t.Setenv("FOLDER", t.TempDir())
	cfg, err := config.New()
	require.NoError(t, err)

	ctx := context.Background()
	first, err := app.New(cfg, app.NewLogger(cfg, &bytes.Buffer{}), "")
	require.NoError(t, err)
	first.Start(ctx)
	result := first.Session.Login(ctx, api.Credentials{"email": "admin@ular.id", "password": "rahasia"})
	require.True(t, result.Success, result.Error)
	token := first.Session.Token()
	require.NoError(t, first.Close())

	second, err := app.New(cfg, app.NewLogger(cfg, &bytes.Buffer{}), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	second.Start(ctx)

	assert.True(t, second.Session.IsAuthenticated())
	assert.Equal(t, token, second.Session.Token())
	assert.Equal(t, "Admin Ular", second.Session.User().DisplayName())

	stored, err := second.Storage.Get(ctx, storage.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, token, stored)
}

func TestBuildSessionUsesGivenStorage(t *testing.T) {
	fake := apitest.NewServer()
	t.Cleanup(fake.Close)
	fake.AddAccount(apitest.Account{Name: "Admin Ular", Email: "admin@ular.id", Password: "rahasia"})

	t.Setenv("API_BASE_URL", fake.URL)
	t.Setenv("STORAGE_BACKEND", config.StorageBackendMemory)
	t.Setenv("LOCALE", "id")
	cfg, err := config.New()
	require.NoError(t, err)

	a, err := app.New(cfg, app.NewLogger(cfg, &bytes.Buffer{}), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	ctx := context.Background()
	sess, sh := a.BuildSession(storage.Namespace(a.Storage, "visitor:x:"))
	sess.Start(ctx)
	result := sess.Login(ctx, api.Credentials{"email": "admin@ular.id", "password": "rahasia"})
	require.True(t, result.Success, result.Error)

	assert.Equal(t, "Halo, Admin Ular", sh.Header().Greeting)
	assert.False(t, a.Session.IsAuthenticated())
	_, err = a.Storage.Get(ctx, storage.KeyAuthToken)
	assert.Error(t, err)
	stored, err := a.Storage.Get(ctx, "visitor:x:"+storage.KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, sess.Token(), stored)
}
