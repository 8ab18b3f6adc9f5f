package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "APP_NAME", "ENV", "LOCALE", "LOG_LEVEL", "API_BASE_URL", "USERS_PAGE_SIZE", "FOLDER", "STORAGE_BACKEND", "STORAGE_FILE"} {
		t.Setenv(key, "")
	}

	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", c.GetPort())
	assert.Equal(t, "Ular Tangga Admin", c.GetAppName())
	assert.Equal(t, "DEV", c.GetEnv())
	assert.Equal(t, "http://localhost:8000/api", c.GetAPIBaseURL())
	assert.Equal(t, 10, c.GetUsersPageSize())
	assert.Equal(t, StorageBackendSQLite, c.GetStorageBackend())
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "PROD")
	t.Setenv("LOCALE", "id")
	t.Setenv("API_BASE_URL", "https://ular.example.com/api/")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("FOLDER", "/var/lib/ular")
	t.Setenv("STORAGE_FILE", "admin.db")

	c, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.GetPort())
	assert.Equal(t, "PROD", c.GetEnv())
	assert.Equal(t, "id", c.GetLocale())
	assert.Equal(t, "https://ular.example.com/api", c.GetAPIBaseURL())
	assert.Equal(t, StorageBackendMemory, c.GetStorageBackend())
	assert.Equal(t, filepath.Join("/var/lib/ular", "admin.db"), c.GetStoragePath())
}

func TestGetPort(t *testing.T) {
	tests := []struct {
		port string
		want string
	}{
		{port: "", want: DefaultListenAddr},
		{port: "9090", want: ":9090"},
		{port: ":9090", want: ":9090"},
		{port: "127.0.0.1:8080", want: "127.0.0.1:8080"},
		{port: "0.0.0.0:80", want: "0.0.0.0:80"},
		{port: "[::1]:8080", want: "[::1]:8080"},
		{port: "localhost:3000", want: "localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.port, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvVars{Port: tt.port}.GetPort())
		})
	}
}

func TestNewHostPortFromEnv(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:8080")

	c, err := New()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", c.GetPort())
}

func TestNewMalformed(t *testing.T) {
	t.Setenv("USERS_PAGE_SIZE", "ten")

	_, err := New()
	assert.Error(t, err)
}

func TestStorageBackendFallback(t *testing.T) {
	assert.Equal(t, StorageBackendSQLite, Storage{Backend: "postgres"}.GetStorageBackend())
}
