package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"bizhub/internal/domain"
	"bizhub/internal/logging"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

const orderColumns = `
    id::text, store_id::text, order_number, order_status, customer, ordered_item,
    price::text, COALESCE(price_currency, ''), tax_total::text, discount_total::text, shipping_cost::text,
    total_payable::text, amount_paid::text, amount_due::text, payment_status, delivery_mode,
    fulfillment_status, order_channel, COALESCE(notes, ''), tags, order_date, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, o domain.Order) (*domain.Order, error) {
	customerJSON, err := json.Marshal(o.Customer)
	if err != nil {
		return nil, err
	}
	items := o.OrderedItem
	if items == nil {
		items = []domain.OrderItem{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return nil, err
	}
	tags := o.Tags
	if tags == nil {
		tags = []string{}
	}
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return nil, err
	}

	const q = `
INSERT INTO orders (
    store_id, order_number, order_status, customer, ordered_item, price, price_currency,
    tax_total, discount_total, shipping_cost, total_payable, amount_paid, amount_due,
    payment_status, delivery_mode, fulfillment_status, order_channel, notes, tags, order_date,
    created_at
) VALUES (
    $1, $2, $3, $4, $5, $6::numeric, NULLIF($7, ''),
    $8::numeric, $9::numeric, $10::numeric, $11::numeric, $12::numeric, $13::numeric,
    $14, $15, $16, $17, NULLIF($18, ''), $19, $20,
    COALESCE($21, now())
)
RETURNING ` + orderColumns
	row := r.pool.QueryRow(ctx, q,
		o.StoreID,
		o.OrderNumber,
		o.OrderStatus,
		customerJSON,
		itemsJSON,
		decimalPtrText(o.Price),
		o.PriceCurrency,
		o.TaxTotal.String(),
		o.DiscountTotal.String(),
		o.ShippingCost.String(),
		decimalPtrText(o.TotalPayable),
		o.AmountPaid.String(),
		o.AmountDue.String(),
		o.PaymentStatus,
		o.DeliveryMode,
		o.FulfillmentStatus,
		string(o.OrderChannel),
		o.Notes,
		tagsJSON,
		o.OrderDate,
		o.CreatedAt,
	)
	out, err := r.scanOrder(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("order repo: create", zap.String("store_id", o.StoreID), zap.Error(err))
		return nil, err
	}
	return out, nil
}

// ListByStore returns orders newest first. Filter fields left at their
// zero value do not constrain the query.
func (r *postgresRepo) ListByStore(ctx context.Context, storeID string, filter domain.OrderFilter) ([]domain.Order, error) {
	var (
		where = []string{"store_id = $1"}
		args  = []any{storeID}
	)
	add := func(clause string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if filter.Status != "" {
		add("order_status = $%d", filter.Status)
	}
	if filter.Channel != "" {
		add("order_channel = $%d", string(filter.Channel))
	}
	if filter.From != nil {
		add("created_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("created_at <= $%d", *filter.To)
	}

	q := `SELECT ` + orderColumns + `
FROM orders
WHERE ` + strings.Join(where, " AND ") + `
ORDER BY created_at DESC NULLS LAST`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		q += fmt.Sprintf("\nLIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		r.logger.Error("order repo: list", zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	result := []domain.Order{}
	for rows.Next() {
		o, err := r.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("order repo: list rows", zap.String("store_id", storeID), zap.Error(err))
		return nil, err
	}
	r.logger.Debug("order repo: list", zap.String("store_id", storeID), zap.Int("count", len(result)))
	return result, nil
}

func (r *postgresRepo) CountByStore(ctx context.Context, storeID string) (int, error) {
	const q = `SELECT count(*) FROM orders WHERE store_id = $1`
	var n int
	if err := r.pool.QueryRow(ctx, q, storeID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *postgresRepo) scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o                                  domain.Order
		customerJSON, itemsJSON, tagsJSON  []byte
		price, totalPayable                *string
		tax, discount, shipping, paid, due string
		channel                            string
	)
	err := row.Scan(
		&o.ID,
		&o.StoreID,
		&o.OrderNumber,
		&o.OrderStatus,
		&customerJSON,
		&itemsJSON,
		&price,
		&o.PriceCurrency,
		&tax,
		&discount,
		&shipping,
		&totalPayable,
		&paid,
		&due,
		&o.PaymentStatus,
		&o.DeliveryMode,
		&o.FulfillmentStatus,
		&channel,
		&o.Notes,
		&tagsJSON,
		&o.OrderDate,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	o.OrderChannel = domain.Channel(channel)

	if err := json.Unmarshal(customerJSON, &o.Customer); err != nil {
		return nil, fmt.Errorf("decode customer of order %s: %w", o.ID, err)
	}
	if err := json.Unmarshal(itemsJSON, &o.OrderedItem); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", o.ID, err)
	}
	if err := json.Unmarshal(tagsJSON, &o.Tags); err != nil {
		return nil, fmt.Errorf("decode tags of order %s: %w", o.ID, err)
	}

	if o.Price, err = parseDecimalPtr(price); err != nil {
		return nil, err
	}
	if o.TotalPayable, err = parseDecimalPtr(totalPayable); err != nil {
		return nil, err
	}
	for _, f := range []struct {
		dst *decimal.Decimal
		src string
	}{
		{&o.TaxTotal, tax},
		{&o.DiscountTotal, discount},
		{&o.ShippingCost, shipping},
		{&o.AmountPaid, paid},
		{&o.AmountDue, due},
	} {
		if *f.dst, err = decimal.NewFromString(f.src); err != nil {
			return nil, fmt.Errorf("parse amount %q of order %s: %w", f.src, o.ID, err)
		}
	}
	return &o, nil
}

func decimalPtrText(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDecimalPtr(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", *s, err)
	}
	return &d, nil
}
