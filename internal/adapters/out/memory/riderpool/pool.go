// Package riderpool provides the in-memory rider pool.
//
// The pool owns the shared availability flags: every Assign runs the
// dispatcher's check-then-flip inside one critical section, so concurrent
// assignment attempts can never win the same rider.
package riderpool

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rider"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
)

// Pool is a mutex-guarded rider collection with a pluggable distance metric.
// Riders are scanned in insertion order.
type Pool struct {
	mu         sync.Mutex
	riders     []*rider.Rider
	dispatcher services.RiderDispatcher
}

// NewPool creates an empty pool using the given distance metric.
// A nil metric falls back to kernel.HaversineDistance.
func NewPool(distance services.DistanceFunc) *Pool {
	return &Pool{
		dispatcher: services.NewRiderDispatcher(distance),
	}
}

// Add registers a rider into the pool.
func (p *Pool) Add(_ context.Context, r *rider.Rider) error {
	if err := r.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.riders = append(p.riders, r)
	return nil
}

// Assign selects the nearest available rider for the (pickup, drop) leg and
// flips it unavailable, all under one lock. Returns services.ErrRiderNotFound
// when nobody is available; the order stays where it is and the caller
// decides whether to retry.
func (p *Pool) Assign(_ context.Context, pickup kernel.Location, drop kernel.Location) (*rider.Rider, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.dispatcher.Dispatch(pickup, drop, p.riders)
}

// Release flips a previously assigned rider available again. This is the only
// path back into the assignable set; delivery completion does not release.
func (p *Pool) Release(_ context.Context, riderID int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, r := range p.riders {
		if r.ID() == riderID {
			r.MarkAvailable()
			return nil
		}
	}

	return errs.NewObjectNotFoundError("riderId", riderID)
}
