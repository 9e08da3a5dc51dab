package store

import (
	"context"

	"bizhub/internal/domain"
)

// Repository loads and creates tenant stores.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.Store, error)
	Create(ctx context.Context, s domain.Store) (*domain.Store, error)
	EnsureBySlug(ctx context.Context, s domain.Store) (*domain.Store, error)
}
