package memory_test

import (
	"context"
	"testing"

	"github.com/jrsteele09/ular-tangga-admin/internal/errors"
	"github.com/jrsteele09/ular-tangga-admin/storage"
	"github.com/jrsteele09/ular-tangga-admin/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	_, err := s.Get(ctx, storage.KeyUser)
	require.True(t, errors.Is(err, errors.ErrNotFound))
	assert.False(t, s.Has(storage.KeyUser))

	require.NoError(t, s.Set(ctx, storage.KeyUser, "{}"))
	assert.True(t, s.Has(storage.KeyUser))

	value, err := s.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.Equal(t, "{}", value)

	require.NoError(t, s.Remove(ctx, storage.KeyUser))
	require.NoError(t, s.Remove(ctx, "missing"))
	assert.False(t, s.Has(storage.KeyUser))
}
