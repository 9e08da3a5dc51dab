package directory

import (
	"context"
	"fmt"

	"bizhub/internal/domain"
	"bizhub/internal/logging"
	"bizhub/internal/profile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultOrderLimit bounds how much order history is folded into profiles.
const DefaultOrderLimit = 1000

type orderSource interface {
	ListByStore(ctx context.Context, storeID string, filter domain.OrderFilter) ([]domain.Order, error)
}

type customerSource interface {
	ListByStore(ctx context.Context, storeID string) ([]domain.Customer, error)
}

// Service builds the point-of-sale customer directory of a store.
type Service struct {
	orders          orderSource
	customers       customerSource
	logger          *zap.Logger
	orderLimit      int
	defaultCurrency string
}

// Option customises a Service.
type Option func(*Service)

// WithOrderLimit caps the number of recent orders read per request.
func WithOrderLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.orderLimit = n
		}
	}
}

// WithDefaultCurrency sets the currency used when a store has none.
func WithDefaultCurrency(c string) Option {
	return func(s *Service) { s.defaultCurrency = c }
}

// WithLogger attaches a logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = logging.OrNop(l) }
}

func New(orders orderSource, customers customerSource, opts ...Option) *Service {
	s := &Service{
		orders:          orders,
		customers:       customers,
		logger:          zap.NewNop(),
		orderLimit:      DefaultOrderLimit,
		defaultCurrency: profile.FallbackCurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List fetches recent orders and standalone customers concurrently and,
// once both have arrived, aggregates and filters them. A failure of either
// fetch returns the error without aggregating anything.
func (s *Service) List(ctx context.Context, store domain.Store, query string) ([]domain.Profile, error) {
	var (
		orders    []domain.Order
		customers []domain.Customer
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orders, err = s.orders.ListByStore(gctx, store.ID, domain.OrderFilter{Limit: s.orderLimit})
		if err != nil {
			return fmt.Errorf("fetch orders: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		customers, err = s.customers.ListByStore(gctx, store.ID)
		if err != nil {
			return fmt.Errorf("fetch customers: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Warn("profile: source fetch failed", zap.String("store_id", store.ID), zap.Error(err))
		return nil, err
	}

	currency := store.Currency
	if currency == "" {
		currency = s.defaultCurrency
	}
	profiles := profile.Filter(profile.Aggregate(orders, customers, currency), query)
	s.logger.Debug("profile: aggregated",
		zap.String("store_id", store.ID),
		zap.Int("orders", len(orders)),
		zap.Int("customers", len(customers)),
		zap.Int("profiles", len(profiles)),
	)
	return profiles, nil
}
