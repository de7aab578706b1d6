package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rider"
)

// RiderPool is the shared set of couriers available for assignment.
//
// Implementations must make Assign atomic: the availability check and the
// flip to busy happen in a single critical section, so two concurrent
// assignments can never win the same rider.
type RiderPool interface {
	// Add registers a rider into the pool. Scan order follows insertion order.
	Add(ctx context.Context, r *rider.Rider) error

	// Assign selects the nearest available rider for the (pickup, drop) leg,
	// flips it unavailable, and returns it. When no rider is available it
	// returns services.ErrRiderNotFound without blocking or retrying;
	// retry policy belongs to the caller.
	Assign(ctx context.Context, pickup kernel.Location, drop kernel.Location) (*rider.Rider, error)

	// Release flips a previously assigned rider available again.
	// Availability never resets on its own; this explicit call is the only
	// way a rider re-enters the assignable set. Unknown ids return an error
	// unwrapping to errs.ErrObjectNotFound.
	Release(ctx context.Context, riderID int64) error
}
