package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/fashionshop/internal/domain"
)

func TestFavoritesToggle(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	uc := NewFavoritesUC(store)
	uc.Load(ctx)

	on, err := uc.Toggle(ctx, "3")
	require.NoError(t, err)
	assert.True(t, on)
	on, err = uc.Toggle(ctx, "5")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, []string{"3", "5"}, uc.List())
	assert.True(t, uc.Has("3"))

	on, err = uc.Toggle(ctx, "3")
	require.NoError(t, err)
	assert.False(t, on)
	assert.Equal(t, `["5"]`, store.raw(domain.KeyFavorites))

	_, err = uc.Toggle(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestFavoritesLoad(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.data[domain.KeyFavorites] = []byte(`["1","1"," 2 ",""]`)
	uc := NewFavoritesUC(store)
	uc.Load(ctx)
	assert.Equal(t, []string{"1", "2"}, uc.List())

	store.data[domain.KeyFavorites] = []byte(`{broken`)
	uc.Load(ctx)
	assert.Empty(t, uc.List())
}

func TestFavoritesFailedWrite(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	uc := NewFavoritesUC(store)
	store.setFailPut(errBoom)
	_, err := uc.Toggle(ctx, "1")
	assert.ErrorIs(t, err, errBoom)
	assert.False(t, uc.Has("1"))
}
