// Package profile derives the point-of-sale customer directory from the
// standalone customer list and the order history.
package profile

import (
	"sort"
	"time"

	"bizhub/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	// FallbackCurrency applies when neither the store nor the order names one.
	FallbackCurrency = "KES"
	// UnknownKey buckets records that carry neither telephone nor name.
	UnknownKey = "unknown"
	// UnknownName is the display name for profiles seeded from anonymous orders.
	UnknownName = "Unknown Customer"
)

// now is swapped in tests.
var now = func() time.Time { return time.Now().UTC() }

// Key returns the identity used to merge customer records: telephone,
// then name, then UnknownKey.
func Key(p domain.Person) string {
	if p.Telephone != "" {
		return p.Telephone
	}
	if p.Name != "" {
		return p.Name
	}
	return UnknownKey
}

// IsPOSChannel reports whether orders on the channel take part in aggregation.
func IsPOSChannel(c domain.Channel) bool {
	return c.IsPOS()
}

// EffectiveAmount is totalPayable, else price, else zero.
func EffectiveAmount(o domain.Order) decimal.Decimal {
	switch {
	case o.TotalPayable != nil:
		return *o.TotalPayable
	case o.Price != nil:
		return *o.Price
	}
	return decimal.Zero
}

// EffectiveDate is orderDate, else createdAt, else the zero time.
func EffectiveDate(o domain.Order) time.Time {
	switch {
	case o.OrderDate != nil:
		return *o.OrderDate
	case o.CreatedAt != nil:
		return *o.CreatedAt
	}
	return time.Time{}
}

// Aggregate merges standalone customers with POS-like orders into one
// profile per identity key, sorted by total spend descending. Standalone
// customers seed the directory first; a repeated key overwrites the earlier
// entry. Orders on other channels are ignored. Ties keep first-insertion
// order. The inputs are not modified.
func Aggregate(orders []domain.Order, customers []domain.Customer, defaultCurrency string) []domain.Profile {
	if defaultCurrency == "" {
		defaultCurrency = FallbackCurrency
	}

	index := make(map[string]int, len(customers))
	profiles := make([]domain.Profile, 0, len(customers))

	for _, c := range customers {
		created := c.CreatedAt
		if created.IsZero() {
			created = now()
		}
		p := domain.Profile{
			Person: clonePerson(c.Person),
			Stats: domain.ProfileStats{
				TotalSpend:    decimal.Zero,
				Currency:      defaultCurrency,
				LastOrderDate: created,
			},
		}
		key := Key(c.Person)
		if i, ok := index[key]; ok {
			profiles[i] = p
			continue
		}
		index[key] = len(profiles)
		profiles = append(profiles, p)
	}

	for _, o := range orders {
		if !IsPOSChannel(o.OrderChannel) {
			continue
		}
		key := Key(o.Customer)
		amount := EffectiveAmount(o)
		date := EffectiveDate(o)

		if i, ok := index[key]; ok {
			stats := &profiles[i].Stats
			stats.OrderCount++
			stats.TotalSpend = stats.TotalSpend.Add(amount)
			if date.After(stats.LastOrderDate) {
				stats.LastOrderDate = date
			}
			continue
		}

		person := clonePerson(o.Customer)
		if person.Name == "" {
			person.Name = UnknownName
		}
		currency := o.PriceCurrency
		if currency == "" {
			currency = FallbackCurrency
		}
		index[key] = len(profiles)
		profiles = append(profiles, domain.Profile{
			Person: person,
			Stats: domain.ProfileStats{
				OrderCount:    1,
				TotalSpend:    amount,
				Currency:      currency,
				LastOrderDate: date,
			},
		})
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return profiles[i].Stats.TotalSpend.GreaterThan(profiles[j].Stats.TotalSpend)
	})
	return profiles
}

func clonePerson(p domain.Person) domain.Person {
	if p.Address != nil {
		addr := *p.Address
		p.Address = &addr
	}
	return p
}
