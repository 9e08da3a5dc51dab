package profile

import (
	"testing"
	"time"

	"bizhub/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

func dec(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func ts(v string) *time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return &t
}

func order(phone, name, amount string, channel domain.Channel, date string) domain.Order {
	o := domain.Order{
		Customer:     domain.Person{Name: name, Telephone: phone},
		OrderChannel: channel,
	}
	if amount != "" {
		o.TotalPayable = dec(amount)
	}
	if date != "" {
		o.OrderDate = ts(date)
	}
	return o
}

func TestAggregate_StandaloneOnly(t *testing.T) {
	created := *ts("2024-03-01T10:00:00Z")
	customers := []domain.Customer{{
		Person:    domain.Person{Name: "Alice", Telephone: "+254700000001"},
		CreatedAt: created,
	}}

	got := Aggregate(nil, customers, "KES")

	require.Len(t, got, 1)
	assert.Equal(t, "Alice", got[0].Person.Name)
	assert.Equal(t, 0, got[0].Stats.OrderCount)
	assert.True(t, got[0].Stats.TotalSpend.IsZero())
	assert.Equal(t, "KES", got[0].Stats.Currency)
	assert.True(t, got[0].Stats.LastOrderDate.Equal(created))
}

func TestAggregate_StandaloneWithoutCreatedAtUsesNow(t *testing.T) {
	fixed := *ts("2025-01-01T00:00:00Z")
	prev := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = prev })

	got := Aggregate(nil, []domain.Customer{{Person: domain.Person{Name: "Bob"}}}, "USD")

	require.Len(t, got, 1)
	assert.True(t, got[0].Stats.LastOrderDate.Equal(fixed))
	assert.Equal(t, "USD", got[0].Stats.Currency)
}

func TestAggregate_OrderOnly(t *testing.T) {
	orders := []domain.Order{order("+254700000002", "Carol", "500", domain.ChannelPOS, "2024-05-01T08:00:00Z")}

	got := Aggregate(orders, nil, "KES")

	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Stats.OrderCount)
	assert.True(t, got[0].Stats.TotalSpend.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "KES", got[0].Stats.Currency)
	assert.True(t, got[0].Stats.LastOrderDate.Equal(*ts("2024-05-01T08:00:00Z")))
}

func TestAggregate_OrderCurrencyUsedForNewProfile(t *testing.T) {
	o := order("+1555", "Dan", "10", domain.ChannelPhone, "")
	o.PriceCurrency = "USD"

	got := Aggregate([]domain.Order{o}, nil, "KES")

	require.Len(t, got, 1)
	assert.Equal(t, "USD", got[0].Stats.Currency)
}

func TestAggregate_MergeByPhone(t *testing.T) {
	customers := []domain.Customer{{
		Person:    domain.Person{Name: "Eve", Telephone: "+254700000003"},
		CreatedAt: *ts("2024-01-01T00:00:00Z"),
	}}
	orders := []domain.Order{
		order("+254700000003", "Eve K", "100", domain.ChannelManual, "2024-02-01T00:00:00Z"),
		order("+254700000003", "", "250", domain.ChannelWhatsApp, "2024-04-01T00:00:00Z"),
	}

	got := Aggregate(orders, customers, "KES")

	require.Len(t, got, 1)
	assert.Equal(t, "Eve", got[0].Person.Name, "standalone identity is authoritative")
	assert.Equal(t, 2, got[0].Stats.OrderCount)
	assert.True(t, got[0].Stats.TotalSpend.Equal(decimal.NewFromInt(350)))
	assert.True(t, got[0].Stats.LastOrderDate.Equal(*ts("2024-04-01T00:00:00Z")))
}

func TestAggregate_FallbackToNameKey(t *testing.T) {
	orders := []domain.Order{
		order("", "Walk-in", "50", domain.ChannelPOS, "2024-01-01T00:00:00Z"),
		order("", "Walk-in", "75", domain.ChannelPOS, "2024-01-02T00:00:00Z"),
	}

	got := Aggregate(orders, nil, "KES")

	require.Len(t, got, 1)
	assert.Equal(t, "Walk-in", Key(got[0].Person))
	assert.Equal(t, 2, got[0].Stats.OrderCount)
	assert.True(t, got[0].Stats.TotalSpend.Equal(decimal.NewFromInt(125)))
}

func TestAggregate_UnknownBucket(t *testing.T) {
	orders := []domain.Order{
		order("", "", "20", domain.ChannelPOS, ""),
		{OrderChannel: domain.ChannelManual, Price: dec("5")},
	}

	got := Aggregate(orders, nil, "")

	require.Len(t, got, 1)
	assert.Equal(t, UnknownName, got[0].Person.Name)
	assert.Equal(t, 2, got[0].Stats.OrderCount)
	assert.True(t, got[0].Stats.TotalSpend.Equal(decimal.NewFromInt(25)))
	assert.True(t, got[0].Stats.LastOrderDate.IsZero())
}

func TestAggregate_ChannelFilter(t *testing.T) {
	customers := []domain.Customer{{
		Person:    domain.Person{Name: "Faith", Telephone: "+254711"},
		CreatedAt: *ts("2024-01-01T00:00:00Z"),
	}}
	orders := []domain.Order{
		order("+254711", "Faith", "999", domain.ChannelOnline, "2025-01-01T00:00:00Z"),
		order("+254799", "Online Only", "10", domain.ChannelOnline, "2025-01-01T00:00:00Z"),
		order("+254711", "Faith", "1", domain.Channel("Marketplace"), "2025-01-01T00:00:00Z"),
	}

	got := Aggregate(orders, customers, "KES")

	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Stats.OrderCount)
	assert.True(t, got[0].Stats.TotalSpend.IsZero())
	assert.True(t, got[0].Stats.LastOrderDate.Equal(*ts("2024-01-01T00:00:00Z")))
}

func TestAggregate_DuplicateStandaloneLastWriteWins(t *testing.T) {
	customers := []domain.Customer{
		{Person: domain.Person{Name: "Old", Telephone: "+1", Email: "old@example.com"}, CreatedAt: *ts("2024-06-01T00:00:00Z")},
		{Person: domain.Person{Name: "New", Telephone: "+1"}, CreatedAt: *ts("2024-01-01T00:00:00Z")},
	}

	got := Aggregate(nil, customers, "KES")

	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Person.Name)
	assert.Empty(t, got[0].Person.Email)
	assert.True(t, got[0].Stats.LastOrderDate.Equal(*ts("2024-01-01T00:00:00Z")))
}

func TestAggregate_OlderOrderKeepsLatestDate(t *testing.T) {
	customers := []domain.Customer{{
		Person:    domain.Person{Name: "Gil", Telephone: "+2"},
		CreatedAt: *ts("2024-09-01T00:00:00Z"),
	}}
	orders := []domain.Order{order("+2", "Gil", "10", domain.ChannelPOS, "2024-03-01T00:00:00Z")}

	got := Aggregate(orders, customers, "KES")

	require.Len(t, got, 1)
	assert.True(t, got[0].Stats.LastOrderDate.Equal(*ts("2024-09-01T00:00:00Z")))
}

func TestAggregate_FallbackAmountAndDate(t *testing.T) {
	o := domain.Order{
		Customer:     domain.Person{Name: "Hana", Telephone: "+3"},
		OrderChannel: domain.ChannelPOS,
		Price:        dec("42.50"),
		CreatedAt:    ts("2024-07-07T00:00:00Z"),
	}

	got := Aggregate([]domain.Order{o}, nil, "KES")

	require.Len(t, got, 1)
	assert.True(t, got[0].Stats.TotalSpend.Equal(decimal.RequireFromString("42.50")))
	assert.True(t, got[0].Stats.LastOrderDate.Equal(*ts("2024-07-07T00:00:00Z")))
}

func mixedInput() ([]domain.Order, []domain.Customer) {
	customers := []domain.Customer{
		{Person: domain.Person{Name: "Alice", Telephone: "+254700000001"}, CreatedAt: *ts("2024-01-01T00:00:00Z")},
		{Person: domain.Person{Name: "Bob", Telephone: "+254700000009", Address: &domain.PostalAddress{StreetAddress: "Moi Ave"}}, CreatedAt: *ts("2024-01-02T00:00:00Z")},
		{Person: domain.Person{Name: "Walk-in"}, CreatedAt: *ts("2024-01-03T00:00:00Z")},
	}
	orders := []domain.Order{
		order("+254700000001", "Alice", "100", domain.ChannelPOS, "2024-02-01T00:00:00Z"),
		order("+254700000009", "Bob", "900", domain.ChannelWhatsApp, "2024-02-02T00:00:00Z"),
		order("", "Walk-in", "30", domain.ChannelManual, "2024-02-03T00:00:00Z"),
		order("+254700000001", "Alice", "5000", domain.ChannelOnline, "2024-02-04T00:00:00Z"),
		order("+254700000005", "Zed", "400", domain.ChannelPhone, "2024-02-05T00:00:00Z"),
		order("", "", "", domain.ChannelPOS, ""),
		order("+254700000001", "Alice", "250.75", domain.ChannelManual, "2024-03-01T00:00:00Z"),
	}
	return orders, customers
}

func TestAggregate_Idempotent(t *testing.T) {
	orders, customers := mixedInput()

	first := Aggregate(orders, customers, "KES")
	second := Aggregate(orders, customers, "KES")

	if diff := cmp.Diff(first, second, decimalEqual); diff != "" {
		t.Fatalf("aggregate not idempotent (-first +second):\n%s", diff)
	}
}

func TestAggregate_Invariants(t *testing.T) {
	orders, customers := mixedInput()

	got := Aggregate(orders, customers, "KES")

	seen := make(map[string]bool)
	for _, p := range got {
		k := Key(p.Person)
		if p.Person.Name == UnknownName && p.Person.Telephone == "" {
			k = UnknownKey
		}
		require.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}

	wantCount := make(map[string]int)
	wantSum := make(map[string]decimal.Decimal)
	for _, o := range orders {
		if !IsPOSChannel(o.OrderChannel) {
			continue
		}
		k := Key(o.Customer)
		wantCount[k]++
		wantSum[k] = wantSum[k].Add(EffectiveAmount(o))
	}
	for _, p := range got {
		k := Key(p.Person)
		if p.Person.Name == UnknownName && p.Person.Telephone == "" {
			k = UnknownKey
		}
		assert.Equal(t, wantCount[k], p.Stats.OrderCount, "count for %q", k)
		assert.True(t, wantSum[k].Equal(p.Stats.TotalSpend), "sum for %q: want %s got %s", k, wantSum[k], p.Stats.TotalSpend)
	}

	for i := 1; i < len(got); i++ {
		assert.True(t, got[i-1].Stats.TotalSpend.GreaterThanOrEqual(got[i].Stats.TotalSpend), "sort order at %d", i)
	}

	require.Len(t, got, 5)
	assert.Equal(t, "Bob", got[0].Person.Name)
}

func TestAggregate_DoesNotAliasInputAddress(t *testing.T) {
	_, customers := mixedInput()

	got := Aggregate(nil, customers, "KES")
	for i := range got {
		if got[i].Person.Address != nil {
			got[i].Person.Address.StreetAddress = "changed"
		}
	}

	assert.Equal(t, "Moi Ave", customers[1].Address.StreetAddress)
}

func TestAggregate_EmptyInputs(t *testing.T) {
	got := Aggregate(nil, nil, "KES")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestKey(t *testing.T) {
	cases := []struct {
		name string
		in   domain.Person
		want string
	}{
		{"telephone wins", domain.Person{Name: "A", Telephone: "+1"}, "+1"},
		{"name fallback", domain.Person{Name: "A"}, "A"},
		{"unknown", domain.Person{}, UnknownKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Key(tc.in))
		})
	}
}
