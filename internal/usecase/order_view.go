package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/phenrril/fashionshop/internal/domain"
)

const defaultEnrichWorkers = 8

// OrderView turns raw remote orders into display-ready ones by joining each
// line with the product cache.
type OrderView struct {
	products domain.ProductLookup
	workers  int
}

func NewOrderView(products domain.ProductLookup) *OrderView {
	return &OrderView{products: products, workers: defaultEnrichWorkers}
}

// Enrich resolves every line independently; the result keeps the order of
// o.Items regardless of which lookup finishes first.
func (v *OrderView) Enrich(ctx context.Context, o domain.Order) ([]domain.EnrichedOrderItem, error) {
	out := make([]domain.EnrichedOrderItem, len(o.Items))
	if len(o.Items) == 0 {
		return out, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(v.workers)
	for i, it := range o.Items {
		i, it := i, it
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, ok := v.products.Get(it.Key())
			out[i] = EnrichItem(it, p, ok)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// EnrichItem applies the fallback chain: order line, then cached product,
// then a literal default. Quantity only ever comes from the order line.
func EnrichItem(it domain.OrderItem, p domain.Product, found bool) domain.EnrichedOrderItem {
	id := it.Key()
	e := domain.EnrichedOrderItem{
		ID:       id,
		Quantity: it.Qty(),
		Color:    it.Color,
		Size:     it.Size,
	}

	e.FullName = strings.TrimSpace(it.Name)
	if e.FullName == "" && found {
		e.FullName = p.Name
	}
	if e.FullName == "" {
		e.FullName = "Sản phẩm " + id
	}

	switch {
	case it.Price.Positive():
		e.Price = domain.Money(it.Price.Value)
	case found && p.Price > 0:
		e.Price = p.Price
	}

	e.Category = it.Category
	if e.Category == "" && found {
		e.Category = p.Category
	}
	e.Image = it.Image
	if e.Image == "" && found {
		e.Image = p.Image
	}
	e.LineTotal = e.Price.Times(e.Quantity)
	return e
}

func TotalQuantity(items []domain.EnrichedOrderItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func TotalAmount(items []domain.EnrichedOrderItem) domain.Money {
	var total domain.Money
	for _, it := range items {
		total += it.LineTotal
	}
	return total
}

// Present builds the order detail. A positive totalAmount from the server wins
// over the sum of the lines.
func (v *OrderView) Present(ctx context.Context, o domain.Order) (domain.OrderDetail, error) {
	items, err := v.Enrich(ctx, o)
	if err != nil {
		return domain.OrderDetail{}, err
	}
	d := domain.OrderDetail{
		Order:         o,
		Items:         items,
		TotalQuantity: TotalQuantity(items),
		Total:         TotalAmount(items),
	}
	if o.TotalAmount.Positive() {
		d.Total = domain.Money(o.TotalAmount.Value)
	}
	return d, nil
}

func (v *OrderView) PresentAll(ctx context.Context, orders []domain.Order) ([]domain.OrderDetail, error) {
	out := make([]domain.OrderDetail, 0, len(orders))
	for _, o := range orders {
		d, err := v.Present(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
