package command

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jrsteele09/ular-tangga-admin/api/apitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type cliEnv struct {
	fake *apitest.Server
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	fake := apitest.NewServer()
	t.Cleanup(fake.Close)
	fake.AddAccount(apitest.Account{Name: "Admin Ular", Email: "admin@ular.id", Password: "rahasia", Role: "admin"})

	t.Setenv("API_BASE_URL", fake.URL)
	t.Setenv("FOLDER", t.TempDir())
	t.Setenv("STORAGE_BACKEND", "sqlite")
	t.Setenv("ENV", "PROD")
	return &cliEnv{fake: fake}
}

// run executes one admin-cli process worth of work and returns its stdout
func (e *cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := App()
	var stdout, stderr bytes.Buffer
	app.Writer = &stdout
	app.ErrWriter = &stderr
	err := app.Run(append([]string{"admin-cli"}, args...))
	return stdout.String(), err
}

func (e *cliEnv) login(t *testing.T) {
	t.Helper()
	_, err := e.run(t, "login", "--email", "admin@ular.id", "--password", "rahasia")
	require.NoError(t, err)
}

func TestLoginPersistsAcrossRuns(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "login", "--email", "admin@ular.id", "--password", "rahasia")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin Ular")

	out, err = env.run(t, "-o", "json", "whoami")
	require.NoError(t, err)
	var who map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &who))
	assert.Equal(t, "Admin Ular", who["name"])
	assert.Equal(t, "admin@ular.id", who["email"])
}

func TestLoginWithKeyValueArgs(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "login", "email=admin@ular.id", "password=rahasia")
	require.NoError(t, err)

	_, err = env.run(t, "login", "not-a-pair")
	assert.ErrorContains(t, err, "not key=value")
}

func TestLoginRejected(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "login", "--email", "admin@ular.id", "--password", "salah")
	assert.EqualError(t, err, "Invalid credentials")

	_, err = env.run(t, "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestRegisterFallbackMessage(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "register", "--name", "Tanpa Email", "--password", "x")
	assert.EqualError(t, err, "Registration failed, please try again")

	t.Setenv("LOCALE", "id")
	_, err = env.run(t, "register", "--name", "Tanpa Email", "--password", "x")
	assert.EqualError(t, err, "Registrasi gagal, silakan coba lagi")
}

func TestLogout(t *testing.T) {
	env := newCLIEnv(t)
	env.login(t)

	_, err := env.run(t, "logout")
	require.NoError(t, err)
	assert.Equal(t, 1, env.fake.Count("POST /logout"))

	_, err = env.run(t, "whoami")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestDashboard(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "overview", args: []string{"dashboard"}, want: []string{"TOTAL USERS", "42"}},
		{name: "users", args: []string{"dashboard", "--tab", "users"}, want: []string{"admin@ular.id", "Admin Ular"}},
		{name: "questions", args: []string{"dashboard", "-t", "questions"}, want: []string{"1 + 1 = ?", "matematika"}},
		{name: "analytics", args: []string{"dashboard", "--tab", "analytics"}, want: []string{"75%", "64.5"}},
		{name: "unknown tab shows overview", args: []string{"dashboard", "--tab", "nonexistent"}, want: []string{"TOTAL USERS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newCLIEnv(t)
			env.fake.SetUsersTotal(42)
			env.login(t)

			out, err := env.run(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestDashboardYAML(t *testing.T) {
	env := newCLIEnv(t)
	env.fake.SetUsersTotal(7)
	env.login(t)

	out, err := env.run(t, "--output", "yaml", "dashboard")
	require.NoError(t, err)

	var got map[string]int
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, 7, got["total_users"])
}

func TestDashboardRequiresLogin(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "dashboard")
	assert.ErrorIs(t, err, errNotLoggedIn)
	assert.Zero(t, env.fake.Count("GET /users"))
}

func TestTabs(t *testing.T) {
	env := newCLIEnv(t)

	out, err := env.run(t, "tabs")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[3], "Bank Soal")
}

func TestUnknownOutputFormat(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "-o", "xml", "tabs")
	assert.ErrorContains(t, err, "unknown output format")
}
