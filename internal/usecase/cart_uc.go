package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/fashionshop/internal/domain"
)

// CartUC is the local cart. Mutations are serialized and written through to
// the store before they become visible.
type CartUC struct {
	store    domain.KVStore
	products domain.ProductLookup

	mu    sync.Mutex
	items []domain.CartItem
}

func NewCartUC(store domain.KVStore, products domain.ProductLookup) *CartUC {
	return &CartUC{store: store, products: products, items: []domain.CartItem{}}
}

// Load replaces the in-memory cart with the persisted one. Missing or
// malformed data yields an empty cart.
func (uc *CartUC) Load(ctx context.Context) {
	items := []domain.CartItem{}
	raw, err := uc.store.Get(ctx, domain.KeyCart)
	switch {
	case errors.Is(err, domain.ErrNotFound):
	case err != nil:
		log.Warn().Err(err).Msg("no se pudo leer el carrito")
	default:
		var stored []domain.CartItem
		if err := json.Unmarshal(raw, &stored); err != nil {
			log.Warn().Err(err).Msg("carrito guardado inválido, se descarta")
		} else {
			items = domain.NormalizeCart(stored)
		}
	}
	uc.mu.Lock()
	uc.items = items
	uc.mu.Unlock()
}

// Add puts one unit of productID in the cart. Unknown products are rejected
// with ErrDataAbsent and leave the cart untouched.
func (uc *CartUC) Add(ctx context.Context, productID string) error {
	id := strings.TrimSpace(productID)
	p, ok := uc.products.Get(id)
	if !ok {
		return errors.Wrapf(domain.ErrDataAbsent, "producto %q", id)
	}
	return uc.Dispatch(ctx, domain.CartCommand{Kind: domain.CartAdd, ProductID: id, Product: &p})
}

func (uc *CartUC) ChangeQuantity(ctx context.Context, productID string, delta int) error {
	return uc.Dispatch(ctx, domain.CartCommand{Kind: domain.CartChangeQuantity, ProductID: strings.TrimSpace(productID), Delta: delta})
}

func (uc *CartUC) Remove(ctx context.Context, productID string) error {
	return uc.Dispatch(ctx, domain.CartCommand{Kind: domain.CartRemove, ProductID: strings.TrimSpace(productID)})
}

func (uc *CartUC) Clear(ctx context.Context) error {
	return uc.Dispatch(ctx, domain.CartCommand{Kind: domain.CartClear})
}

// Dispatch reduces cmd over the current cart and persists the result. If the
// write fails the in-memory cart is left as it was.
func (uc *CartUC) Dispatch(ctx context.Context, cmd domain.CartCommand) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	next, changed := domain.ReduceCart(uc.items, cmd)
	if err := uc.persist(ctx, next); err != nil {
		return errors.Wrapf(err, "carrito: %s", cmd.Kind)
	}
	uc.items = next
	if changed {
		log.Debug().Str("op", cmd.Kind.String()).Str("product_id", cmd.ProductID).Int("count", domain.CartCount(next)).Msg("carrito actualizado")
	}
	return nil
}

func (uc *CartUC) persist(ctx context.Context, items []domain.CartItem) error {
	if items == nil {
		items = []domain.CartItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return uc.store.Put(ctx, domain.KeyCart, b)
}

// Items returns a copy of the cart in insertion order.
func (uc *CartUC) Items() []domain.CartItem {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	out := make([]domain.CartItem, len(uc.items))
	copy(out, uc.items)
	return out
}

func (uc *CartUC) Item(productID string) (domain.CartItem, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for _, it := range uc.items {
		if it.ID == productID {
			return it, true
		}
	}
	return domain.CartItem{}, false
}

// TotalCount is the badge number: the sum of all quantities.
func (uc *CartUC) TotalCount() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return domain.CartCount(uc.items)
}

func (uc *CartUC) Subtotal() domain.Money {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return domain.CartSubtotal(uc.items)
}
