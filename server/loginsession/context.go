package loginsession

import (
	"context"

	"github.com/jrsteele09/ular-tangga-admin/session"
)

type visitorKey struct{}

// WithVisitor returns a context carrying v and its session store, so
// session.FromContext keeps working for code that only needs the store
func WithVisitor(ctx context.Context, v *Visitor) context.Context {
	ctx = session.WithStore(ctx, v.Session)
	return context.WithValue(ctx, visitorKey{}, v)
}

func FromContext(ctx context.Context) (*Visitor, bool) {
	v, ok := ctx.Value(visitorKey{}).(*Visitor)
	return v, ok && v != nil
}
