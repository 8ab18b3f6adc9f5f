package session

import (
	"context"

	"github.com/jrsteele09/ular-tangga-admin/internal/errors"
)

type storeKey struct{}

// WithStore returns a context carrying the store
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// FromContext returns the store carried by ctx. Outside of a context built
// by WithStore it fails with errors.ErrNotInitialized instead of handing out
// an empty session.
func FromContext(ctx context.Context) (*Store, error) {
	if ctx == nil {
		return nil, errors.ErrNotInitialized
	}
	s, ok := ctx.Value(storeKey{}).(*Store)
	if !ok || s == nil {
		return nil, errors.ErrNotInitialized
	}
	return s, nil
}
