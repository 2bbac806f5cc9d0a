package ports

import (
	"context"

	"github.com/storefront/storefront-api/internal/core/domain"
)

// AddressInput is the payload for adding a shipping address.
type AddressInput struct {
	Type       domain.AddressType `json:"address_type" validate:"required,oneof=home work other"`
	Street     string             `json:"street_address" validate:"required,max=255"`
	City       string             `json:"city" validate:"required,max=100"`
	State      string             `json:"state" validate:"max=100"`
	PostalCode string             `json:"postal_code" validate:"required,max=20"`
	Country    string             `json:"country" validate:"required,max=100"`
}

// AddressService manages the caller's own address book.
type AddressService interface {
	Add(ctx context.Context, caller domain.Claims, in AddressInput) (*domain.Address, error)
	List(ctx context.Context, caller domain.Claims) ([]domain.Address, error)
	Delete(ctx context.Context, caller domain.Claims, rawAddressID string) error
}
