package seed

import (
	"context"
	"fmt"
	"time"

	"bizhub/internal/domain"
	"bizhub/internal/logging"
	custrepo "bizhub/internal/repository/customer"
	orderrepo "bizhub/internal/repository/order"
	storerepo "bizhub/internal/repository/store"
	customersvc "bizhub/internal/service/customer"
	ordersvc "bizhub/internal/service/order"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const demoSlug = "demo"

type customerSeed struct {
	Name      string
	Telephone string
	Email     string
	Locality  string
}

type orderSeed struct {
	Customer domain.Person
	Item     string
	Qty      int
	Unit     string
	Channel  domain.Channel
	DaysAgo  int
}

var demoCustomers = []customerSeed{
	{Name: "Amina Njeri", Telephone: "+254711000001", Email: "amina@example.com", Locality: "Nairobi"},
	{Name: "Brian Otieno", Telephone: "+254711000002", Locality: "Kisumu"},
	{Name: "Grace Mwangi", Email: "grace@example.com"},
}

var demoOrders = []orderSeed{
	{Customer: domain.Person{Name: "Amina Njeri", Telephone: "+254711000001"}, Item: "Maize flour 2kg", Qty: 3, Unit: "210", Channel: domain.ChannelPOS, DaysAgo: 12},
	{Customer: domain.Person{Name: "Amina Njeri", Telephone: "+254711000001"}, Item: "Cooking oil 1L", Qty: 1, Unit: "380", Channel: domain.ChannelWhatsApp, DaysAgo: 3},
	{Customer: domain.Person{Name: "Peter Kamau", Telephone: "+254722000003"}, Item: "Sugar 1kg", Qty: 2, Unit: "175.50", Channel: domain.ChannelPhone, DaysAgo: 7},
	{Customer: domain.Person{Name: "Walk-in"}, Item: "Bread", Qty: 1, Unit: "65", Channel: domain.ChannelManual, DaysAgo: 1},
	{Customer: domain.Person{Name: "Brian Otieno", Telephone: "+254711000002"}, Item: "Rice 5kg", Qty: 1, Unit: "1250", Channel: domain.ChannelOnline, DaysAgo: 5},
}

// Apply creates a demo store with standalone customers and a mix of POS and
// online orders. A store that already has customers is left untouched.
func Apply(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	logger = logging.OrNop(logger)
	stores := storerepo.NewPostgres(pool, logger)
	customerRepo := custrepo.NewPostgres(pool, logger)
	customers := customersvc.New(customerRepo)
	orders := ordersvc.New(orderrepo.NewPostgres(pool, logger))

	store, err := stores.EnsureBySlug(ctx, domain.Store{Slug: demoSlug, Name: "Demo Duka", Currency: "KES"})
	if err != nil {
		return fmt.Errorf("ensure store: %w", err)
	}

	existing, err := customerRepo.ListByStore(ctx, store.ID)
	if err != nil {
		return fmt.Errorf("list customers: %w", err)
	}
	if len(existing) > 0 {
		logger.Info("demo store already seeded", zap.String("store_id", store.ID))
		return nil
	}

	for _, c := range demoCustomers {
		in := customersvc.CreateInput{Name: c.Name, Telephone: c.Telephone, Email: c.Email}
		if c.Locality != "" {
			in.Address = &customersvc.AddressInput{AddressLocality: c.Locality, AddressCountry: "KE"}
		}
		if _, err := customers.Create(ctx, store.ID, in); err != nil {
			return fmt.Errorf("create customer %s: %w", c.Name, err)
		}
	}

	now := time.Now().UTC()
	for _, o := range demoOrders {
		unit := decimal.RequireFromString(o.Unit)
		price := unit.Mul(decimal.NewFromInt(int64(o.Qty)))
		date := now.AddDate(0, 0, -o.DaysAgo)
		created, err := orders.Create(ctx, store.ID, ordersvc.CreateInput{
			Customer:      o.Customer,
			OrderedItem:   []ordersvc.ItemInput{{Name: o.Item, OrderQuantity: o.Qty, UnitPrice: unit}},
			Price:         &price,
			PriceCurrency: store.Currency,
			OrderChannel:  o.Channel,
			OrderDate:     &date,
		})
		if err != nil {
			return fmt.Errorf("create order for %s: %w", o.Customer.Name, err)
		}
		logger.Debug("seeded order", zap.String("order_number", created.OrderNumber))
	}

	logger.Info("demo store seeded",
		zap.String("store_id", store.ID),
		zap.Int("customers", len(demoCustomers)),
		zap.Int("orders", len(demoOrders)),
	)
	return nil
}
