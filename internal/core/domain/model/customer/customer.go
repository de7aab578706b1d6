// Package customer provides the Customer aggregate and its Cart.
// A customer owns exactly one cart at a time; the cart contents become the
// immutable snapshot of an order at checkout.
package customer

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrCustomerIsNotConstructed is returned when using an improperly
// initialized Customer.
var ErrCustomerIsNotConstructed = errors.New(
	"Customer must be created via NewCustomer constructor")

// Customer is the ordering user: identity, display name, delivery address,
// drop location, and the single cart being filled.
type Customer struct {
	id       int64
	name     string
	address  string
	location kernel.Location
	cart     *Cart
	guard    guard.ConstructorGuard
}

// NewCustomer creates a Customer with an empty cart.
func NewCustomer(id int64, name string, address string, location kernel.Location) (*Customer, error) {
	if id <= 0 {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	return &Customer{
		id:       id,
		name:     name,
		address:  address,
		location: location,
		cart:     NewCart(),
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Customer was created through its constructor.
func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

// ID returns the customer identifier.
func (c *Customer) ID() int64 {
	return c.id
}

// Name returns the display name used for notifications.
func (c *Customer) Name() string {
	return c.name
}

// Address returns the free-form delivery address.
func (c *Customer) Address() string {
	return c.address
}

// Location returns the customer's drop location.
func (c *Customer) Location() kernel.Location {
	return c.location
}

// Cart returns the customer's cart.
func (c *Customer) Cart() *Cart {
	return c.cart
}
