// Package session holds the admin client's authentication state: the
// bearer token and the profile of the signed-in user. The in-memory state
// is authoritative; durable storage is a mirror that lets a session
// survive restarts.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/jrsteele09/ular-tangga-admin/api"
	"github.com/jrsteele09/ular-tangga-admin/internal/errors"
	"github.com/jrsteele09/ular-tangga-admin/internal/i18n"
	"github.com/jrsteele09/ular-tangga-admin/storage"
	"github.com/jrsteele09/ular-tangga-admin/token/jwt"
	"github.com/jrsteele09/ular-tangga-admin/users"
	"github.com/rs/zerolog"
	"golang.org/x/text/message"
)

// Authenticator is the part of the collaborator API the store calls
type Authenticator interface {
	CurrentUser(ctx context.Context, token string) (*users.Profile, error)
	Login(ctx context.Context, creds api.Credentials) (*api.AuthResponse, error)
	Register(ctx context.Context, data api.RegistrationData) (*api.AuthResponse, error)
	Logout(ctx context.Context, token string) error
}

var _ Authenticator = (*api.Client)(nil)

// Store owns the Session. Concurrent Login/Register calls are not
// serialised: each applies its own outcome when its response arrives, so
// the last one to finish decides the final state.
type Store struct {
	client  Authenticator
	storage storage.Store
	logger  zerolog.Logger
	printer *message.Printer

	mu        sync.RWMutex
	token     string
	user      *users.Profile
	loading   bool
	expiresAt time.Time
	started   bool

	subsMu  sync.Mutex
	subs    map[int]func(Session)
	nextSub int
}

type Option func(*Store)

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithLocale selects the language of the fallback failure messages
func WithLocale(locale string) Option {
	return func(s *Store) {
		s.printer = i18n.Printer(locale)
	}
}

// New creates a store in the loading state. Call Start once before use.
func New(client Authenticator, store storage.Store, opts ...Option) *Store {
	s := &Store{
		client:  client,
		storage: store,
		logger:  zerolog.Nop(),
		printer: i18n.Printer(""),
		loading: true,
		subs:    make(map[int]func(Session)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the persisted token and verifies it. From then on every change
// of the in-memory token re-runs Initialize.
func (s *Store) Start(ctx context.Context) {
	token, err := s.storage.Get(ctx, storage.KeyAuthToken)
	if err != nil && !errors.Is(err, errors.ErrNotFound) {
		s.logger.Warn().Err(err).Msg("[session Start] failed to read persisted token")
	}

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	s.update(ctx, func(st *state) {
		st.token = token
	})
	// A token change above already re-ran Initialize
	if token == "" {
		s.Initialize(ctx)
	}
}

// Stop detaches subscribers and stops the re-initialisation on token
// change. The store stays readable.
func (s *Store) Stop() {
	s.mu.Lock()
	s.started = false
	s.mu.Unlock()

	s.subsMu.Lock()
	s.subs = make(map[int]func(Session))
	s.subsMu.Unlock()
}

// Initialize verifies the held token against the collaborator API. Any
// verification failure silently clears the session.
func (s *Store) Initialize(ctx context.Context) {
	defer s.setLoading(ctx, false)

	token := s.Token()
	if token == "" {
		return
	}

	user, err := s.client.CurrentUser(ctx, token)
	if err != nil {
		cleared := false
		s.update(ctx, func(st *state) {
			// a newer sign-in owns the session now
			if st.token == token {
				st.token = ""
				st.user = nil
				cleared = true
			}
		})
		if !cleared {
			s.logger.Debug().Err(err).Msg("[session Initialize] stale token rejected, session already replaced")
			return
		}
		s.logger.Warn().Err(err).Msg("[session Initialize] token verification failed, clearing session")
		s.clearPersisted(ctx)
		return
	}

	s.update(ctx, func(st *state) {
		// the token may have changed while the request was in flight
		if st.token == token {
			st.user = user
		}
	})
}

// Login exchanges creds for a token and user. It never returns an error:
// failures are reported in the Result and leave the session untouched.
func (s *Store) Login(ctx context.Context, creds api.Credentials) Result {
	s.setLoading(ctx, true)
	defer s.setLoading(ctx, false)

	resp, err := s.client.Login(ctx, creds)
	if err != nil {
		s.logger.Info().Err(err).Msg("[session Login] login rejected")
		return Result{Success: false, Error: s.failureMessage(err, i18n.MsgLoginFailed)}
	}
	return s.establish(ctx, resp)
}

// Register creates an account and signs straight into it
func (s *Store) Register(ctx context.Context, data api.RegistrationData) Result {
	s.setLoading(ctx, true)
	defer s.setLoading(ctx, false)

	resp, err := s.client.Register(ctx, data)
	if err != nil {
		s.logger.Info().Err(err).Msg("[session Register] registration rejected")
		return Result{Success: false, Error: s.failureMessage(err, i18n.MsgRegistrationFailed)}
	}
	return s.establish(ctx, resp)
}

func (s *Store) establish(ctx context.Context, resp *api.AuthResponse) Result {
	if err := s.storage.Set(ctx, storage.KeyAuthToken, resp.Token); err != nil {
		s.logger.Error().Err(err).Msg("[session] failed to persist token")
	}
	if userJSON, err := json.Marshal(resp.User); err != nil {
		s.logger.Error().Err(err).Msg("[session] failed to encode user")
	} else if err := s.storage.Set(ctx, storage.KeyUser, string(userJSON)); err != nil {
		s.logger.Error().Err(err).Msg("[session] failed to persist user")
	}

	s.update(ctx, func(st *state) {
		st.token = resp.Token
		st.user = resp.User
	})
	return Result{Success: true, User: resp.User}
}

// Logout always succeeds locally. The server-side revoke is best effort.
func (s *Store) Logout(ctx context.Context) {
	if token := s.Token(); token != "" {
		if err := s.client.Logout(ctx, token); err != nil {
			s.logger.Warn().Err(err).Msg("[session Logout] server logout failed, clearing local session anyway")
		}
	}

	s.clearPersisted(ctx)
	s.update(ctx, func(st *state) {
		st.token = ""
		st.user = nil
	})
}

func (s *Store) failureMessage(err error, fallback string) string {
	if msg, ok := api.ServerMessage(err); ok {
		return msg
	}
	return s.printer.Sprintf(fallback)
}

func (s *Store) clearPersisted(ctx context.Context) {
	for _, key := range []string{storage.KeyAuthToken, storage.KeyUser} {
		if err := s.storage.Remove(ctx, key); err != nil {
			s.logger.Error().Err(err).Str("key", key).Msg("[session] failed to remove persisted value")
		}
	}
}

// Snapshot returns a copy of the current session
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Session {
	return Session{
		Token:     s.token,
		User:      s.user,
		Loading:   s.loading,
		ExpiresAt: s.expiresAt,
	}
}

func (s *Store) IsAuthenticated() bool {
	return s.Snapshot().IsAuthenticated()
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) User() *users.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Subscribe registers fn to receive the session after every change. The
// returned func unsubscribes.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.subsMu.Lock()
		defer s.subsMu.Unlock()
		delete(s.subs, id)
	}
}

type state struct {
	token   string
	user    *users.Profile
	loading bool
}

func (s *Store) setLoading(ctx context.Context, loading bool) {
	s.update(ctx, func(st *state) {
		st.loading = loading
	})
}

// update applies fn under the lock, notifies subscribers and, when the token
// changed on a started store, re-runs Initialize.
func (s *Store) update(ctx context.Context, fn func(*state)) {
	s.mu.Lock()
	st := state{token: s.token, user: s.user, loading: s.loading}
	fn(&st)

	tokenChanged := st.token != s.token
	changed := tokenChanged || st.user != s.user || st.loading != s.loading
	s.token, s.user, s.loading = st.token, st.user, st.loading
	if tokenChanged {
		s.expiresAt = time.Time{}
		if ti, err := jwt.Introspect(s.token); err == nil {
			s.expiresAt = ti.ExpiresAt
		}
	}
	snapshot := s.snapshotLocked()
	reinit := tokenChanged && s.started
	s.mu.Unlock()

	if changed {
		s.notify(snapshot)
	}
	if reinit {
		s.Initialize(ctx)
	}
}

func (s *Store) notify(snapshot Session) {
	s.subsMu.Lock()
	subs := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
