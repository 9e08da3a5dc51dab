package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProfileStats holds lifetime statistics derived from POS-like orders.
type ProfileStats struct {
	OrderCount    int             `json:"orderCount"`
	TotalSpend    decimal.Decimal `json:"totalSpend"`
	Currency      string          `json:"currency"`
	LastOrderDate time.Time       `json:"lastOrderDate"`
}

// Profile is a deduplicated customer with aggregated stats. Profiles are
// computed per request and never stored.
type Profile struct {
	Person Person       `json:"person"`
	Stats  ProfileStats `json:"stats"`
}
