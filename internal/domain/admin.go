package domain

import "context"

// AdminAPI is the remote admin surface. Every call carries the admin API key.
type AdminAPI interface {
	Stats(ctx context.Context, apiKey string) (DashboardStats, error)
	ListOrders(ctx context.Context, apiKey string) ([]Order, error)
	GetOrder(ctx context.Context, apiKey, id string) (Order, error)
	UpdateOrderStatus(ctx context.Context, apiKey, id string, status OrderStatus) error
	DeleteOrder(ctx context.Context, apiKey, id string) error
}
