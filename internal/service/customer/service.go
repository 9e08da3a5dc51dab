package customer

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"bizhub/internal/domain"
	custrepo "bizhub/internal/repository/customer"
)

// Service manages the standalone customer directory of a store.
type Service struct {
	repo custrepo.Repository
}

// New creates a Service.
func New(repo custrepo.Repository) *Service {
	return &Service{repo: repo}
}

// AddressInput mirrors incoming schema.org PostalAddress payloads.
type AddressInput struct {
	StreetAddress   string `json:"streetAddress"`
	AddressLocality string `json:"addressLocality"`
	AddressRegion   string `json:"addressRegion"`
	PostalCode      string `json:"postalCode"`
	AddressCountry  string `json:"addressCountry"`
}

// CreateInput captures fields accepted by the customer form.
type CreateInput struct {
	Name      string        `json:"name"`
	Telephone string        `json:"telephone"`
	Email     string        `json:"email"`
	Address   *AddressInput `json:"address"`
}

// Create validates and stores a standalone customer. Only the name is
// required.
func (s *Service) Create(ctx context.Context, storeID string, in CreateInput) (*domain.Customer, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name required", domain.ErrInvalidInput)
	}
	email := strings.TrimSpace(in.Email)
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return nil, fmt.Errorf("%w: invalid email", domain.ErrInvalidInput)
		}
	}

	c := domain.Customer{
		StoreID: storeID,
		Person: domain.Person{
			Name:      name,
			Telephone: strings.TrimSpace(in.Telephone),
			Email:     email,
		},
	}
	if in.Address != nil {
		addr := domain.PostalAddress{
			StreetAddress:   strings.TrimSpace(in.Address.StreetAddress),
			AddressLocality: strings.TrimSpace(in.Address.AddressLocality),
			AddressRegion:   strings.TrimSpace(in.Address.AddressRegion),
			PostalCode:      strings.TrimSpace(in.Address.PostalCode),
			AddressCountry:  strings.TrimSpace(in.Address.AddressCountry),
		}
		if !addr.IsZero() {
			c.Address = &addr
		}
	}
	return s.repo.Create(ctx, c)
}

// List returns the store's customers, most recently updated first.
func (s *Service) List(ctx context.Context, storeID string) ([]domain.Customer, error) {
	return s.repo.ListByStore(ctx, storeID)
}
