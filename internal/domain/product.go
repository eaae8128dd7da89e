package domain

import "context"

type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       Money  `json:"price"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
	Featured    bool   `json:"featured"`
}

// CatalogSource says where the current product cache came from.
type CatalogSource string

const (
	CatalogEmpty    CatalogSource = "empty"
	CatalogRemote   CatalogSource = "remote"
	CatalogFallback CatalogSource = "fallback"
)

// ProductSource fetches the full remote catalog.
type ProductSource interface {
	ListProducts(ctx context.Context) ([]Product, error)
}

// ProductLookup resolves a product by id without touching the network.
type ProductLookup interface {
	Get(id string) (Product, bool)
}
