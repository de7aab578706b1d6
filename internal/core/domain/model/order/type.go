package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Type distinguishes how an order is fulfilled once the kitchen is done:
// a rider carries it to the customer, or the customer collects it at the
// counter.
type Type int

const (
	// TypeUnknown represents an invalid or undefined order type.
	// This value (0) helps catch uninitialized Type values.
	TypeUnknown Type = iota

	// TypeDelivery means a rider carries the order to the customer.
	TypeDelivery

	// TypePickup means the customer collects the order at the restaurant.
	// Pickup orders never enter the rider stage.
	TypePickup
)

// Validate checks that the Type is one of the declared fulfillment modes.
func (t Type) Validate() error {
	if t != TypeDelivery && t != TypePickup {
		return errs.NewValueIsInvalidErrorWithCause("order type",
			fmt.Errorf("%d is not a valid order type, choose Delivery or Pickup", t))
	}
	return nil
}

// String returns the human-readable name of the order type.
// Safe to call on any value, including invalid ones.
func (t Type) String() string {
	switch t {
	case TypeDelivery:
		return "Delivery"
	case TypePickup:
		return "Pickup"
	default:
		return "Unknown"
	}
}
