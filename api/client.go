// Package api is the HTTP client for the Ular Tangga backend. The backend is
// an external collaborator; this package only shapes requests and decodes
// the JSON it returns.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jrsteele09/ular-tangga-admin/internal/errors"
	"github.com/jrsteele09/ular-tangga-admin/users"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
)

// Collaborator API paths
const (
	PathCurrentUser = "/user"
	PathLogin       = "/login"
	PathRegister    = "/register"
	PathLogout      = "/logout"
	PathUsers       = "/users"
	PathQuestions   = "/questions"
	PathAnalytics   = "/analytics"
)

// Credentials is the login payload, forwarded verbatim
type Credentials map[string]any

// RegistrationData is the registration payload, forwarded verbatim
type RegistrationData map[string]any

// AuthResponse is the body of a successful login or registration
type AuthResponse struct {
	User  *users.Profile `json:"user"`
	Token string         `json:"token"`
}

type currentUserResponse struct {
	User *users.Profile `json:"user"`
}

// Client talks to the collaborator API. It holds no session state: callers
// pass the bearer token for every authenticated call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	userAgent  string
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client. Its Transport is used as
// the base for authenticated requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a client rooted at baseURL, e.g. "http://localhost:8000/api".
// No request timeout is configured; callers bound calls with their context.
func New(baseURL string, opts ...Option) *Client {
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "http://" + baseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
		userAgent:  "ular-tangga-admin/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the base URL of the client
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CurrentUser verifies token by fetching the profile it belongs to
func (c *Client) CurrentUser(ctx context.Context, token string) (*users.Profile, error) {
	if token == "" {
		return nil, errors.ErrNoToken
	}
	var resp currentUserResponse
	if err := c.do(ctx, http.MethodGet, PathCurrentUser, token, nil, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil {
		return nil, errors.Wrapf(errors.ErrInvalidResponse, "[api CurrentUser] missing user")
	}
	return resp.User, nil
}

func (c *Client) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	return c.authenticate(ctx, PathLogin, creds)
}

func (c *Client) Register(ctx context.Context, data RegistrationData) (*AuthResponse, error) {
	return c.authenticate(ctx, PathRegister, data)
}

func (c *Client) authenticate(ctx context.Context, path string, payload any) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, path, "", payload, &resp); err != nil {
		return nil, err
	}
	if resp.User == nil || resp.Token == "" {
		return nil, errors.Wrapf(errors.ErrInvalidResponse, "[api %s] missing user or token", path)
	}
	return &resp, nil
}

// Logout revokes token on the server. The response body is ignored.
func (c *Client) Logout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, PathLogout, token, nil, nil)
}

func (c *Client) ListUsers(ctx context.Context, token string, page, limit int) (*users.ListResponse, error) {
	var resp users.ListResponse
	if err := c.do(ctx, http.MethodGet, PathUsers+pageQuery(page, limit), token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func pageQuery(page, limit int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return "?" + q.Encode()
}

func (c *Client) do(ctx context.Context, method, path, token string, body, target any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.clientFor(token).Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("api request failed")
		return errors.Wrapf(errors.ErrRequestFailed, "%s %s: %v", method, path, err)
	}
	c.logger.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Str("request_id", requestID).Msg("api request")

	return ParseResponse(resp, target)
}

// clientFor returns an http.Client that adds "Authorization: Bearer <token>"
// when token is set
func (c *Client) clientFor(token string) *http.Client {
	if token == "" {
		return c.httpClient
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.httpClient.Transport,
		},
		CheckRedirect: c.httpClient.CheckRedirect,
		Jar:           c.httpClient.Jar,
		Timeout:       c.httpClient.Timeout,
	}
}
