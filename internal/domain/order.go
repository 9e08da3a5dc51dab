package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Channel is the sales channel an order was taken on.
type Channel string

const (
	ChannelManual   Channel = "Manual"
	ChannelPOS      Channel = "POS"
	ChannelPhone    Channel = "Phone"
	ChannelWhatsApp Channel = "WhatsApp"
	ChannelOnline   Channel = "Online"
)

// IsPOS reports whether the channel is an in-person or direct-contact sale.
func (c Channel) IsPOS() bool {
	switch c {
	case ChannelManual, ChannelPOS, ChannelPhone, ChannelWhatsApp:
		return true
	}
	return false
}

const (
	OrderStatusPaymentDue = "OrderPaymentDue"
	OrderStatusProcessing = "OrderProcessing"

	PaymentStatusDue = "PaymentDue"

	FulfillmentPending = "Pending"

	DeliveryModeDelivery = "Delivery"
)

// OrderItem is a single order line.
type OrderItem struct {
	ProductID     string          `json:"productId,omitempty"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku,omitempty"`
	OrderQuantity int             `json:"orderQuantity"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	LineTotal     decimal.Decimal `json:"lineTotal"`
}

// Order is a schema.org-shaped order. Price, TotalPayable, OrderDate and
// CreatedAt are optional on records coming from older writers.
type Order struct {
	ID                string           `json:"id"`
	StoreID           string           `json:"storeId"`
	OrderNumber       string           `json:"orderNumber"`
	OrderStatus       string           `json:"orderStatus"`
	Customer          Person           `json:"customer"`
	OrderedItem       []OrderItem      `json:"orderedItem"`
	Price             *decimal.Decimal `json:"price,omitempty"`
	PriceCurrency     string           `json:"priceCurrency,omitempty"`
	TaxTotal          decimal.Decimal  `json:"taxTotal"`
	DiscountTotal     decimal.Decimal  `json:"discountTotal"`
	ShippingCost      decimal.Decimal  `json:"shippingCost"`
	TotalPayable      *decimal.Decimal `json:"totalPayable,omitempty"`
	AmountPaid        decimal.Decimal  `json:"amountPaid"`
	AmountDue         decimal.Decimal  `json:"amountDue"`
	PaymentStatus     string           `json:"paymentStatus"`
	DeliveryMode      string           `json:"deliveryMode"`
	FulfillmentStatus string           `json:"fulfillmentStatus"`
	OrderChannel      Channel          `json:"orderChannel"`
	Notes             string           `json:"notes,omitempty"`
	Tags              []string         `json:"tags"`
	OrderDate         *time.Time       `json:"orderDate,omitempty"`
	CreatedAt         *time.Time       `json:"createdAt,omitempty"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// OrderFilter narrows order listings. Zero values are ignored.
type OrderFilter struct {
	Status  string
	Channel Channel
	From    *time.Time
	To      *time.Time
	Limit   int
}
