package storage

import "context"

// Namespace scopes every key of base under prefix, so several sessions can
// share one backend without seeing each other's values
func Namespace(base Store, prefix string) Store {
	return &namespaced{base: base, prefix: prefix}
}

type namespaced struct {
	base   Store
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.base.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.base.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) Remove(ctx context.Context, key string) error {
	return n.base.Remove(ctx, n.prefix+key)
}
