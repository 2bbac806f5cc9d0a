package domain

import "time"

// AddressType classifies a saved address.
type AddressType string

const (
	AddressHome  AddressType = "home"
	AddressWork  AddressType = "work"
	AddressOther AddressType = "other"
)

// MaxAddressesPerUser caps how many addresses one account may keep.
const MaxAddressesPerUser = 10

// Address belongs to exactly one user and is removed with it.
type Address struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"user_id"`
	Type       AddressType `json:"address_type"`
	Street     string      `json:"street_address"`
	City       string      `json:"city"`
	State      string      `json:"state"`
	PostalCode string      `json:"postal_code"`
	Country    string      `json:"country"`
	CreatedAt  time.Time   `json:"created_at"`
}
