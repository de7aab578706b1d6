package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the store for order aggregates.
type OrderRepository interface {
	// Add stores a new order. The order must be valid and its id unused.
	Add(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id. Unknown ids return an error unwrapping
	// to errs.ErrObjectNotFound.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetAllInStatus retrieves every order currently in the given status,
	// in insertion order. Used by the redispatch job to find orders stuck
	// waiting for a rider.
	GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error)
}
