package store

import (
	"context"
	"errors"

	"bizhub/internal/domain"
	"bizhub/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	const q = `
SELECT id::text, slug, name, currency, created_at
FROM stores
WHERE id = $1
`
	var s domain.Store
	err := r.pool.QueryRow(ctx, q, id).Scan(&s.ID, &s.Slug, &s.Name, &s.Currency, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("store repo: get", zap.String("store_id", id), zap.Error(err))
		return nil, err
	}
	return &s, nil
}

func (r *postgresRepo) Create(ctx context.Context, s domain.Store) (*domain.Store, error) {
	const q = `
INSERT INTO stores (slug, name, currency)
VALUES ($1, $2, $3)
RETURNING id::text, created_at
`
	out := s
	err := r.pool.QueryRow(ctx, q, s.Slug, s.Name, s.Currency).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &out, nil
}

// EnsureBySlug creates the store or updates name and currency of the
// existing one with the same slug.
func (r *postgresRepo) EnsureBySlug(ctx context.Context, s domain.Store) (*domain.Store, error) {
	const q = `
INSERT INTO stores (slug, name, currency)
VALUES ($1, $2, $3)
ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name, currency = EXCLUDED.currency
RETURNING id::text, created_at
`
	out := s
	if err := r.pool.QueryRow(ctx, q, s.Slug, s.Name, s.Currency).Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}
