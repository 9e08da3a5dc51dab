package customer

import (
	"context"
	"encoding/json"
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

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *zap.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrNop(logger)}
}

const customerColumns = `id::text, store_id::text, name, COALESCE(telephone, ''), COALESCE(email, ''), address, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	var addrJSON []byte
	if c.Address != nil && !c.Address.IsZero() {
		var err error
		if addrJSON, err = json.Marshal(c.Address); err != nil {
			return nil, err
		}
	}

	const q = `
INSERT INTO customers (store_id, name, telephone, email, address)
VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5)
RETURNING ` + customerColumns
	return r.scanCustomer(r.pool.QueryRow(ctx, q, c.StoreID, c.Name, c.Telephone, c.Email, addrJSON))
}

func (r *postgresRepo) ListByStore(ctx context.Context, storeID string) ([]domain.Customer, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers
WHERE store_id = $1
ORDER BY updated_at DESC
`
	rows, err := r.pool.Query(ctx, q, storeID)
	if err != nil {
		r.logger.Error("customer repo: list", zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Customer{}
	for rows.Next() {
		c, err := r.scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("customer repo: list rows", zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("customer repo: list", zap.String("store_id", storeID), zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	var addrJSON []byte
	err := row.Scan(
		&c.ID,
		&c.StoreID,
		&c.Name,
		&c.Telephone,
		&c.Email,
		&addrJSON,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("customer repo: scan", zap.Error(err))
		return nil, err
	}
	if len(addrJSON) > 0 {
		var addr domain.PostalAddress
		if err := json.Unmarshal(addrJSON, &addr); err != nil {
			r.logger.Error("customer repo: decode address", zap.String("customer_id", c.ID), zap.Error(err))
			return nil, err
		}
		c.Address = &addr
	}
	return &c, nil
}
