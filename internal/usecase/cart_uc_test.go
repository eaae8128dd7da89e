package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/fashionshop/internal/domain"
)

func newCart(t *testing.T) (*CartUC, *memStore, lookupMap) {
	t.Helper()
	products := lookupMap{
		"1": {ID: "1", Name: "Đầm dạ hội lộng lẫy", Price: 3500000, Image: "dam.jpg"},
		"2": {ID: "2", Name: "Áo sơ mi lụa trắng", Price: 850000, Image: "ao.jpg"},
	}
	store := newMemStore()
	uc := NewCartUC(store, products)
	uc.Load(context.Background())
	return uc, store, products
}

func TestCartAddSameIDAccumulates(t *testing.T) {
	ctx := context.Background()
	for _, n := range []int{1, 2, 7} {
		uc, _, _ := newCart(t)
		for i := 0; i < n; i++ {
			require.NoError(t, uc.Add(ctx, "1"))
		}
		items := uc.Items()
		require.Len(t, items, 1)
		assert.Equal(t, n, items[0].Quantity)
		assert.Equal(t, n, uc.TotalCount())
	}
}

func TestCartAddUnknownProductIsNoop(t *testing.T) {
	uc, store, _ := newCart(t)
	err := uc.Add(context.Background(), "404")
	assert.ErrorIs(t, err, domain.ErrDataAbsent)
	assert.Empty(t, uc.Items())
	assert.Zero(t, store.puts)
}

func TestCartPriceIsSnapshot(t *testing.T) {
	uc, _, products := newCart(t)
	ctx := context.Background()
	require.NoError(t, uc.Add(ctx, "2"))

	products["2"] = domain.Product{ID: "2", Name: "Áo sơ mi lụa trắng", Price: 990000}
	require.NoError(t, uc.Add(ctx, "2"))

	it, ok := uc.Item("2")
	require.True(t, ok)
	assert.Equal(t, domain.Money(850000), it.Price)
	assert.Equal(t, 2, it.Quantity)
	assert.Equal(t, "ao.jpg", it.Image)
}

func TestCartChangeQuantityRemovesAtZero(t *testing.T) {
	uc, _, _ := newCart(t)
	ctx := context.Background()
	require.NoError(t, uc.Add(ctx, "1"))
	require.NoError(t, uc.Add(ctx, "1"))
	require.NoError(t, uc.Add(ctx, "2"))

	require.NoError(t, uc.ChangeQuantity(ctx, "1", -2))
	_, ok := uc.Item("1")
	assert.False(t, ok, "item must be removed, not left with quantity 0")
	assert.Equal(t, 1, uc.TotalCount())

	require.NoError(t, uc.ChangeQuantity(ctx, "2", 3))
	it, _ := uc.Item("2")
	assert.Equal(t, 4, it.Quantity)

	require.NoError(t, uc.ChangeQuantity(ctx, "2", -100))
	assert.Empty(t, uc.Items())

	require.NoError(t, uc.ChangeQuantity(ctx, "missing", 1))
	assert.Empty(t, uc.Items())
}

func TestCartRemove(t *testing.T) {
	uc, store, _ := newCart(t)
	ctx := context.Background()
	require.NoError(t, uc.Add(ctx, "1"))
	require.NoError(t, uc.Add(ctx, "2"))

	require.NoError(t, uc.Remove(ctx, "1"))
	require.NoError(t, uc.Remove(ctx, "1"))
	items := uc.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "2", items[0].ID)
	assert.JSONEq(t, `[{"id":"2","name":"Áo sơ mi lụa trắng","price":850000,"quantity":1,"image":"ao.jpg"}]`, store.raw(domain.KeyCart))
}

func TestCartWriteThroughRoundTrip(t *testing.T) {
	uc, store, products := newCart(t)
	ctx := context.Background()
	require.NoError(t, uc.Add(ctx, "2"))
	require.NoError(t, uc.Add(ctx, "1"))
	require.NoError(t, uc.Add(ctx, "2"))
	want := uc.Items()

	reloaded := NewCartUC(store, products)
	reloaded.Load(ctx)
	assert.Equal(t, want, reloaded.Items())
	assert.Equal(t, "2", reloaded.Items()[0].ID, "first added stays first")
	assert.Equal(t, domain.Money(3500000+2*850000), reloaded.Subtotal())
}

func TestCartLoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []domain.CartItem
	}{
		{"garbage", `{not json`, []domain.CartItem{}},
		{"wrong shape", `{"id":"1"}`, []domain.CartItem{}},
		{"null", `null`, []domain.CartItem{}},
		{"zero quantity dropped", `[{"id":"1","quantity":0},{"id":"2","quantity":2}]`, []domain.CartItem{{ID: "2", Quantity: 2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			store.data[domain.KeyCart] = []byte(tt.raw)
			uc := NewCartUC(store, lookupMap{})
			assert.NotPanics(t, func() { uc.Load(context.Background()) })
			assert.Equal(t, tt.want, uc.Items())
		})
	}
}

func TestCartFailedWriteKeepsState(t *testing.T) {
	uc, store, _ := newCart(t)
	ctx := context.Background()
	require.NoError(t, uc.Add(ctx, "1"))

	store.setFailPut(errBoom)
	err := uc.Add(ctx, "1")
	require.ErrorIs(t, err, errBoom)
	it, _ := uc.Item("1")
	assert.Equal(t, 1, it.Quantity)

	store.setFailPut(nil)
	require.NoError(t, uc.Add(ctx, "1"))
	it, _ = uc.Item("1")
	assert.Equal(t, 2, it.Quantity)
}

func TestCartRepersistIsIdempotent(t *testing.T) {
	uc, store, _ := newCart(t)
	ctx := context.Background()
	require.NoError(t, uc.Add(ctx, "1"))
	before := store.raw(domain.KeyCart)

	require.NoError(t, uc.Remove(ctx, "nope"))
	assert.Equal(t, before, store.raw(domain.KeyCart))
}

func TestCartClear(t *testing.T) {
	uc, store, _ := newCart(t)
	ctx := context.Background()
	require.NoError(t, uc.Add(ctx, "1"))
	require.NoError(t, uc.Clear(ctx))
	assert.Empty(t, uc.Items())
	assert.Equal(t, `[]`, store.raw(domain.KeyCart))
}
