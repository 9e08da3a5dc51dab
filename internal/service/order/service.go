package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bizhub/internal/domain"
	orderrepo "bizhub/internal/repository/order"

	"github.com/shopspring/decimal"
)

const defaultOrderCurrency = "USD"

// Service records and lists a store's orders.
type Service struct {
	repo orderrepo.Repository
	now  func() time.Time
}

func New(repo orderrepo.Repository) *Service {
	return &Service{repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

type ItemInput struct {
	ProductID     string           `json:"productId"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku"`
	OrderQuantity int              `json:"orderQuantity"`
	UnitPrice     decimal.Decimal  `json:"unitPrice"`
	LineTotal     *decimal.Decimal `json:"lineTotal"`
}

type CreateInput struct {
	Customer      domain.Person    `json:"customer"`
	OrderedItem   []ItemInput      `json:"orderedItem"`
	Price         *decimal.Decimal `json:"price"`
	PriceCurrency string           `json:"priceCurrency"`
	TaxTotal      decimal.Decimal  `json:"taxTotal"`
	DiscountTotal decimal.Decimal  `json:"discountTotal"`
	ShippingCost  decimal.Decimal  `json:"shippingCost"`
	DeliveryMode  string           `json:"deliveryMode"`
	OrderChannel  domain.Channel   `json:"orderChannel"`
	Notes         string           `json:"notes"`
	Tags          []string         `json:"tags"`
	OrderDate     *time.Time       `json:"orderDate"`
}

// Create validates the input, computes the payable total and assigns the
// next ORD-YYYYMMDD-NNNN number for the store.
func (s *Service) Create(ctx context.Context, storeID string, in CreateInput) (*domain.Order, error) {
	name := strings.TrimSpace(in.Customer.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: customer.name required", domain.ErrInvalidInput)
	}
	if len(in.OrderedItem) == 0 {
		return nil, fmt.Errorf("%w: orderedItem required", domain.ErrInvalidInput)
	}
	if in.Price == nil {
		return nil, fmt.Errorf("%w: price required", domain.ErrInvalidInput)
	}

	items := make([]domain.OrderItem, 0, len(in.OrderedItem))
	for i, it := range in.OrderedItem {
		if strings.TrimSpace(it.Name) == "" {
			return nil, fmt.Errorf("%w: orderedItem[%d].name required", domain.ErrInvalidInput, i)
		}
		if it.OrderQuantity <= 0 {
			return nil, fmt.Errorf("%w: orderedItem[%d].orderQuantity must be positive", domain.ErrInvalidInput, i)
		}
		line := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.OrderQuantity)))
		if it.LineTotal != nil {
			line = *it.LineTotal
		}
		items = append(items, domain.OrderItem{
			ProductID:     it.ProductID,
			Name:          strings.TrimSpace(it.Name),
			SKU:           it.SKU,
			OrderQuantity: it.OrderQuantity,
			UnitPrice:     it.UnitPrice,
			LineTotal:     line,
		})
	}

	total := in.Price.Add(in.TaxTotal).Add(in.ShippingCost).Sub(in.DiscountTotal)
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: discount exceeds order total", domain.ErrInvalidInput)
	}

	count, err := s.repo.CountByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}

	person := in.Customer
	person.Name = name
	price := *in.Price
	o := domain.Order{
		StoreID:           storeID,
		OrderNumber:       orderNumber(s.now(), count+1),
		OrderStatus:       domain.OrderStatusPaymentDue,
		Customer:          person,
		OrderedItem:       items,
		Price:             &price,
		PriceCurrency:     firstNonEmpty(in.PriceCurrency, defaultOrderCurrency),
		TaxTotal:          in.TaxTotal,
		DiscountTotal:     in.DiscountTotal,
		ShippingCost:      in.ShippingCost,
		TotalPayable:      &total,
		AmountPaid:        decimal.Zero,
		AmountDue:         total,
		PaymentStatus:     domain.PaymentStatusDue,
		DeliveryMode:      firstNonEmpty(in.DeliveryMode, domain.DeliveryModeDelivery),
		FulfillmentStatus: domain.FulfillmentPending,
		OrderChannel:      domain.Channel(firstNonEmpty(string(in.OrderChannel), string(domain.ChannelOnline))),
		Notes:             in.Notes,
		Tags:              in.Tags,
		OrderDate:         in.OrderDate,
	}
	created, err := s.repo.Create(ctx, o)
	if errors.Is(err, domain.ErrAlreadyExists) {
		return nil, fmt.Errorf("order number %s taken: %w", o.OrderNumber, err)
	}
	return created, err
}

// List returns orders newest first.
func (s *Service) List(ctx context.Context, storeID string, filter domain.OrderFilter) ([]domain.Order, error) {
	return s.repo.ListByStore(ctx, storeID, filter)
}

func orderNumber(day time.Time, seq int) string {
	return fmt.Sprintf("ORD-%s-%04d", day.Format("20060102"), seq)
}

func firstNonEmpty(v, def string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
