package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/ular-tangga-admin/api"
	"github.com/jrsteele09/ular-tangga-admin/api/apitest"
	"github.com/jrsteele09/ular-tangga-admin/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "admin@ulartangga.id"
	testPassword = "rahasia"
)

func setupAPI(t *testing.T) (*apitest.Server, *api.Client) {
	t.Helper()
	srv := apitest.NewServer()
	t.Cleanup(srv.Close)
	srv.AddAccount(apitest.Account{Name: "Admin", Email: testEmail, Password: testPassword, Role: "admin"})
	return srv, api.New(srv.URL)
}

func TestLoginSuccess(t *testing.T) {
	_, client := setupAPI(t)

	resp, err := client.Login(context.Background(), api.Credentials{"email": testEmail, "password": testPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "Admin", resp.User.DisplayName())
	assert.Equal(t, "1", resp.User.ID)
}

func TestLoginRejectedCarriesServerMessage(t *testing.T) {
	_, client := setupAPI(t)

	_, err := client.Login(context.Background(), api.Credentials{"email": testEmail, "password": "wrong"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	msg, ok := api.ServerMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid credentials", msg)
}

func TestRegisterWithoutMessage(t *testing.T) {
	_, client := setupAPI(t)

	_, err := client.Register(context.Background(), api.RegistrationData{"name": "No Email"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrRequestFailed))
	_, ok := api.ServerMessage(err)
	assert.False(t, ok)
}

func TestCurrentUserUsesBearerToken(t *testing.T) {
	srv, client := setupAPI(t)
	ctx := context.Background()
	token := srv.IssueToken(testEmail)

	user, err := client.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, testEmail, user.Email)

	srv.Revoke(token)
	_, err = client.CurrentUser(ctx, token)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))

	_, err = client.CurrentUser(ctx, "")
	assert.True(t, errors.Is(err, errors.ErrNoToken))
}

func TestLogoutRevokesToken(t *testing.T) {
	srv, client := setupAPI(t)
	ctx := context.Background()
	token := srv.IssueToken(testEmail)

	require.NoError(t, client.Logout(ctx, token))
	_, err := client.CurrentUser(ctx, token)
	require.Error(t, err)
	assert.Error(t, client.Logout(ctx, token))
}

func TestListUsersPagination(t *testing.T) {
	srv, client := setupAPI(t)
	srv.SetUsersTotal(42)

	resp, err := client.ListUsers(context.Background(), srv.IssueToken(testEmail), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 42, resp.Total())
	assert.Len(t, resp.Users, 1)
}

func TestRequestShape(t *testing.T) {
	var got *http.Request
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":{"id":"u1","name":"A"},"token":"t1"}`))
	}))
	defer srv.Close()

	creds := api.Credentials{"id": "admin", "secret": "s3cret", "remember": true}
	_, err := api.New(srv.URL+"/").Login(context.Background(), creds)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/login", got.URL.Path)
	assert.Equal(t, "application/json", got.Header.Get("Content-Type"))
	assert.NotEmpty(t, got.Header.Get("X-Request-ID"))
	assert.Empty(t, got.Header.Get("Authorization"))
	assert.Equal(t, map[string]any{"id": "admin", "secret": "s3cret", "remember": true}, body)
}

func TestListUsersQuery(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		_, _ = w.Write([]byte(`{"users":[]}`))
	}))
	defer srv.Close()

	resp, err := api.New(srv.URL).ListUsers(context.Background(), "tok", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total())
	assert.Equal(t, "1", got.URL.Query().Get("page"))
	assert.Equal(t, "10", got.URL.Query().Get("limit"))
	assert.Equal(t, "Bearer tok", got.Header.Get("Authorization"))
}

func TestMissingTokenIsInvalidResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"name":"A"}}`))
	}))
	defer srv.Close()

	_, err := api.New(srv.URL).Login(context.Background(), api.Credentials{})
	assert.True(t, errors.Is(err, errors.ErrInvalidResponse))
}

func TestContentEndpoints(t *testing.T) {
	srv, client := setupAPI(t)
	ctx := context.Background()
	token := srv.IssueToken(testEmail)

	questions, err := client.ListQuestions(ctx, token, 1, 10)
	require.NoError(t, err)
	assert.Len(t, questions.Questions, 3)

	analytics, err := client.Analytics(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 12, analytics.TotalGames)
	assert.InDelta(t, 0.75, analytics.CorrectRate, 0.0001)
}
