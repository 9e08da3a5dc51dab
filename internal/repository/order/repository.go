package order

import (
	"context"

	"bizhub/internal/domain"
)

// Repository persists and fetches orders.
type Repository interface {
	Create(ctx context.Context, o domain.Order) (*domain.Order, error)
	ListByStore(ctx context.Context, storeID string, filter domain.OrderFilter) ([]domain.Order, error)
	CountByStore(ctx context.Context, storeID string) (int, error)
}
