package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/fashionshop/internal/domain"
)

// catalogSnapshot is immutable once published.
type catalogSnapshot struct {
	byID   map[string]domain.Product
	list   []domain.Product
	source domain.CatalogSource
	at     time.Time
}

func newSnapshot(list []domain.Product, source domain.CatalogSource) *catalogSnapshot {
	s := &catalogSnapshot{
		byID:   make(map[string]domain.Product, len(list)),
		list:   make([]domain.Product, 0, len(list)),
		source: source,
		at:     time.Now(),
	}
	for _, p := range list {
		if p.ID == "" {
			continue
		}
		if _, dup := s.byID[p.ID]; dup {
			continue
		}
		s.byID[p.ID] = p
		s.list = append(s.list, p)
	}
	return s
}

// Catalog is the in-memory product cache. Readers never block and never see
// a partially built cache: Refresh builds a new snapshot and swaps it in.
type Catalog struct {
	source domain.ProductSource
	snap   atomic.Pointer[catalogSnapshot]
}

func NewCatalog(src domain.ProductSource) *Catalog {
	c := &Catalog{source: src}
	c.snap.Store(newSnapshot(nil, domain.CatalogEmpty))
	return c
}

// Refresh reloads the remote catalog. On any failure the built-in catalog is
// installed instead; the error is only logged.
func (c *Catalog) Refresh(ctx context.Context) domain.CatalogSource {
	list, err := c.fetch(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("catálogo remoto no disponible, usando catálogo local")
		c.snap.Store(newSnapshot(domain.FallbackProducts(), domain.CatalogFallback))
		return domain.CatalogFallback
	}
	c.snap.Store(newSnapshot(list, domain.CatalogRemote))
	log.Info().Int("products", len(list)).Msg("catálogo actualizado")
	return domain.CatalogRemote
}

func (c *Catalog) fetch(ctx context.Context) ([]domain.Product, error) {
	if c.source == nil {
		return nil, errors.Wrap(domain.ErrNetwork, "sin origen remoto")
	}
	list, err := c.source.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(newSnapshot(list, domain.CatalogRemote).list) == 0 {
		return nil, errors.Wrap(domain.ErrProtocol, "catálogo remoto vacío")
	}
	return list, nil
}

// Get is a cache-only read.
func (c *Catalog) Get(id string) (domain.Product, bool) {
	p, ok := c.snap.Load().byID[id]
	return p, ok
}

// List returns the products in catalog order.
func (c *Catalog) List() []domain.Product {
	s := c.snap.Load()
	out := make([]domain.Product, len(s.list))
	copy(out, s.list)
	return out
}

func (c *Catalog) Featured() []domain.Product {
	out := []domain.Product{}
	for _, p := range c.snap.Load().list {
		if p.Featured {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Source() domain.CatalogSource { return c.snap.Load().source }

func (c *Catalog) Len() int { return len(c.snap.Load().list) }
