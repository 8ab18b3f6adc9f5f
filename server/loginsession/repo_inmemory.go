package loginsession

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/ular-tangga-admin/internal/errors"
	"github.com/jrsteele09/ular-tangga-admin/session"
	"github.com/jrsteele09/ular-tangga-admin/storage"
	"github.com/rs/zerolog"
)

var _ Repo = (*InMemoryRepo)(nil)

// InMemoryRepo holds live visitors in a map. Persisted tokens outlive it:
// a visitor dropped after MaxIdle, or lost in a restart, comes back on its
// next request while its token is still stored.
type InMemoryRepo struct {
	base    storage.Store
	build   Builder
	logger  zerolog.Logger
	maxIdle time.Duration
	now     func() time.Time

	mu       sync.Mutex
	visitors map[string]*Visitor
}

type Option func(*InMemoryRepo)

func WithLogger(logger zerolog.Logger) Option {
	return func(r *InMemoryRepo) {
		r.logger = logger
	}
}

// WithMaxIdle sets how long an unused visitor stays in memory. Zero keeps
// visitors until they log out.
func WithMaxIdle(d time.Duration) Option {
	return func(r *InMemoryRepo) {
		r.maxIdle = d
	}
}

// WithClock replaces time.Now
func WithClock(now func() time.Time) Option {
	return func(r *InMemoryRepo) {
		r.now = now
	}
}

func NewInMemoryRepo(base storage.Store, build Builder, opts ...Option) *InMemoryRepo {
	r := &InMemoryRepo{
		base:     base,
		build:    build,
		logger:   zerolog.Nop(),
		now:      time.Now,
		visitors: make(map[string]*Visitor),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *InMemoryRepo) Create(ctx context.Context) (*Visitor, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return nil, errors.Wrapf(err, "[loginsession Create] failed to generate id")
	}

	v := r.newVisitor(ctx, id.String())

	r.mu.Lock()
	r.pruneLocked()
	r.visitors[v.ID] = v
	r.mu.Unlock()

	r.logger.Debug().Str("visitor", v.ID).Msg("[loginsession Create] visitor created")
	return v, nil
}

func (r *InMemoryRepo) Get(ctx context.Context, id string) (*Visitor, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.Wrapf(errors.ErrNotFound, "visitor %q", id)
	}

	r.mu.Lock()
	v, ok := r.visitors[id]
	if ok {
		v.lastSeen = r.now()
	}
	r.mu.Unlock()
	if ok {
		return v, nil
	}

	return r.restore(ctx, id)
}

// restore brings back a visitor whose token is still in storage. Start
// verifies the token, so a revoked one yields a signed-out visitor.
func (r *InMemoryRepo) restore(ctx context.Context, id string) (*Visitor, error) {
	st := storage.Namespace(r.base, KeyPrefix(id))
	if _, err := st.Get(ctx, storage.KeyAuthToken); err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			r.logger.Warn().Err(err).Str("visitor", id).Msg("[loginsession Get] failed to read persisted token")
		}
		return nil, errors.Wrapf(errors.ErrNotFound, "visitor %q", id)
	}

	v := r.newVisitor(ctx, id)

	r.mu.Lock()
	if existing, ok := r.visitors[id]; ok {
		r.mu.Unlock()
		v.stop()
		return existing, nil
	}
	r.visitors[id] = v
	r.mu.Unlock()

	r.logger.Debug().Str("visitor", id).Bool("authenticated", v.Session.IsAuthenticated()).Msg("[loginsession Get] visitor restored")
	return v, nil
}

func (r *InMemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	v, ok := r.visitors[id]
	delete(r.visitors, id)
	r.mu.Unlock()
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "visitor %q", id)
	}

	v.stop()
	for _, key := range []string{storage.KeyAuthToken, storage.KeyUser} {
		if err := v.storage.Remove(ctx, key); err != nil {
			r.logger.Error().Err(err).Str("visitor", id).Str("key", key).Msg("[loginsession Delete] failed to remove persisted value")
		}
	}
	return nil
}

func (r *InMemoryRepo) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.visitors)
}

// Close stops every visitor. Persisted values are kept.
func (r *InMemoryRepo) Close() {
	r.mu.Lock()
	visitors := r.visitors
	r.visitors = make(map[string]*Visitor)
	r.mu.Unlock()

	for _, v := range visitors {
		v.stop()
	}
}

func (r *InMemoryRepo) newVisitor(ctx context.Context, id string) *Visitor {
	st := storage.Namespace(r.base, KeyPrefix(id))
	sess, sh := r.build(st)
	now := r.now()
	v := &Visitor{
		ID:        id,
		Session:   sess,
		Shell:     sh,
		CreatedAt: now,
		lastSeen:  now,
		storage:   st,
	}
	// a session cleared underneath the dashboard unmounts it
	v.detach = sess.Subscribe(func(s session.Session) {
		if !s.IsAuthenticated() {
			sh.Unmount()
		}
	})
	sess.Start(ctx)
	return v
}

// pruneLocked drops visitors idle for longer than maxIdle. Their stored
// tokens stay, so Get can restore them.
func (r *InMemoryRepo) pruneLocked() {
	if r.maxIdle <= 0 {
		return
	}
	cutoff := r.now().Add(-r.maxIdle)
	for id, v := range r.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(r.visitors, id)
			v.stop()
		}
	}
}

func (v *Visitor) stop() {
	if v.detach != nil {
		v.detach()
	}
	v.Session.Stop()
}
