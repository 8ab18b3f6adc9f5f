// Package loginsession keeps one admin session per browser. Each visitor is
// identified by a random id carried in a cookie and owns its own session
// store and dashboard shell, persisted under a key prefix of its own.
package loginsession

import (
	"context"
	"time"

	"github.com/jrsteele09/ular-tangga-admin/session"
	"github.com/jrsteele09/ular-tangga-admin/shell"
	"github.com/jrsteele09/ular-tangga-admin/storage"
)

// Visitor is one browser's view of the admin client
type Visitor struct {
	ID        string
	Session   *session.Store
	Shell     *shell.Shell
	CreatedAt time.Time

	lastSeen time.Time
	detach   func()
	storage  storage.Store
}

// Builder creates the session store and shell for a visitor over its
// namespaced storage
type Builder func(st storage.Store) (*session.Store, *shell.Shell)

type Repo interface {
	// Create starts a new visitor with an empty session
	Create(ctx context.Context) (*Visitor, error)
	// Get returns the visitor for id, restoring it from storage when it
	// still holds a persisted token. Unknown ids give errors.ErrNotFound.
	Get(ctx context.Context, id string) (*Visitor, error)
	// Delete stops the visitor and removes its persisted values
	Delete(ctx context.Context, id string) error
	Count() int
	Close()
}

// KeyPrefix is the storage prefix of the visitor id
func KeyPrefix(id string) string {
	return "visitor:" + id + ":"
}
