// Package ports defines the boundary interfaces of the fulfillment engine:
// registries, the rider pool, the order store, and the external collaborators
// (notifier, clock). These contracts enable dependency inversion and
// testability between the core and its adapters.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/restaurant"
)

// RestaurantRegistry is the keyed store of restaurants and the admission gate
// for order creation.
type RestaurantRegistry interface {
	// Register inserts or overwrites a restaurant keyed by name.
	// Registering the same name again replaces the prior entry (last write
	// wins); the operation is idempotent by key, not by content.
	Register(ctx context.Context, r *restaurant.Restaurant) error

	// GetByName retrieves a restaurant by its registered name.
	// Unknown names return an error unwrapping to errs.ErrObjectNotFound.
	GetByName(ctx context.Context, name string) (*restaurant.Restaurant, error)

	// CanAccept reports whether the restaurant currently accepts orders.
	// Used as the admission gate before an order is created.
	CanAccept(ctx context.Context, r *restaurant.Restaurant) (bool, error)
}
