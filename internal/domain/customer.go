package domain

import "time"

// PostalAddress follows schema.org/PostalAddress field names.
type PostalAddress struct {
	StreetAddress   string `json:"streetAddress,omitempty"`
	AddressLocality string `json:"addressLocality,omitempty"`
	AddressRegion   string `json:"addressRegion,omitempty"`
	PostalCode      string `json:"postalCode,omitempty"`
	AddressCountry  string `json:"addressCountry,omitempty"`
}

// IsZero reports whether no address field is set.
func (a PostalAddress) IsZero() bool {
	return a == PostalAddress{}
}

// Person is a known customer identity, embedded in orders and in the
// standalone customer directory.
type Person struct {
	Name      string         `json:"name"`
	Telephone string         `json:"telephone,omitempty"`
	Email     string         `json:"email,omitempty"`
	Address   *PostalAddress `json:"address,omitempty"`
}

// Customer is a standalone directory entry created independently of any order.
type Customer struct {
	ID        string `json:"id"`
	StoreID   string `json:"storeId"`
	Person
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
