package localfs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/fashionshop/internal/domain"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := New(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)

	_, err = s.Get(ctx, domain.KeyCart)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.Put(ctx, domain.KeyCart, []byte(`[{"id":"1"}]`)))
	got, err := s.Get(ctx, domain.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1"}]`, string(got))

	require.NoError(t, s.Put(ctx, domain.KeyCart, []byte(`[]`)))
	got, err = s.Get(ctx, domain.KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	require.NoError(t, s.Delete(ctx, domain.KeyCart))
	require.NoError(t, s.Delete(ctx, domain.KeyCart))
	_, err = s.Get(ctx, domain.KeyCart)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Put(ctx, domain.KeyFavorites, []byte(`["1"]`)))
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "favorites.json", entries[0].Name())
}

func TestStoreRejectsBadKeys(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	err = s.Put(context.Background(), "../escape", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrValidation)
}
