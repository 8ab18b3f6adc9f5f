// Package storage is the durable key/value mirror of the admin session.
// It survives process restarts the way browser local storage survives page
// reloads; the in-memory session is authoritative once loaded.
package storage

import "context"

// Keys persisted by the session store
const (
	KeyAuthToken = "auth_token"
	KeyUser      = "user"
)

// Store is a string-keyed persistent store.
// Get returns errors.ErrNotFound when the key is absent. Remove of a
// missing key is not an error.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
