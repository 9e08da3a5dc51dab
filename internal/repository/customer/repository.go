package customer

import (
	"context"

	"bizhub/internal/domain"
)

// Repository persists and fetches standalone customers.
type Repository interface {
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	ListByStore(ctx context.Context, storeID string) ([]domain.Customer, error)
}
