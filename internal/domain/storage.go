package domain

import "context"

// Keys used in local storage.
const (
	KeyCart        = "cart"
	KeyAdminAPIKey = "adminApiKey"
	KeyFavorites   = "favorites"
)

// KVStore is the client's local storage. Get returns ErrNotFound for a missing key.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
