package services

import (
	"errors"
	"math"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rider"
)

// ErrRiderNotFound is returned when no available rider exists for an
// assignment. The caller must treat this as a recoverable but unresolved
// state, not a fault: the order simply waits for the next attempt.
var ErrRiderNotFound = errors.New("rider not found")

// DistanceFunc computes the distance between two locations.
// The dispatcher is parameterized over it so the metric can be swapped;
// kernel.HaversineDistance is the default.
type DistanceFunc func(from kernel.Location, to kernel.Location) (float64, error)

// RiderDispatcher is a domain service that selects the best rider for a
// delivery leg.
//
// Selection rules:
//   - Only riders with available == true are considered
//   - Riders are scanned in pool order; the strict minimum distance wins
//   - Ties resolve in favor of the first-encountered rider
//   - The winner is flipped unavailable as part of the dispatch
//
// Dispatch never blocks or retries; retry policy belongs to the caller.
type RiderDispatcher struct {
	distance DistanceFunc
}

// NewRiderDispatcher creates a dispatcher with the given distance metric.
// A nil metric falls back to kernel.HaversineDistance.
func NewRiderDispatcher(distance DistanceFunc) RiderDispatcher {
	if distance == nil {
		distance = kernel.HaversineDistance
	}
	return RiderDispatcher{distance: distance}
}

// Dispatch finds the nearest available rider for the (pickup, drop) leg and
// marks it busy. Returns ErrRiderNotFound when no rider is available.
//
// Note: the distance is measured from the rider to the drop location, i.e.
// the rider ending closest to the customer wins. The pickup location is part
// of the signature so the policy can be flipped in one place.
func (d RiderDispatcher) Dispatch(pickup kernel.Location, drop kernel.Location, riders []*rider.Rider) (*rider.Rider, error) {
	if err := errors.Join(pickup.Validate(), drop.Validate()); err != nil {
		return nil, err
	}

	bestRider, err := d.findNearestAvailable(drop, riders)
	if err != nil {
		return nil, err
	}

	bestRider.MarkBusy()
	return bestRider, nil
}

// findNearestAvailable scans the riders in order and keeps the strict minimum.
func (d RiderDispatcher) findNearestAvailable(target kernel.Location, riders []*rider.Rider) (*rider.Rider, error) {
	var (
		bestRider    *rider.Rider
		bestDistance = math.MaxFloat64
	)

	for _, r := range riders {
		if err := r.Validate(); err != nil {
			return nil, err
		}

		if !r.IsAvailable() {
			continue
		}

		distance, err := d.distance(r.Location(), target)
		if err != nil {
			return nil, err
		}

		if distance < bestDistance {
			bestDistance = distance
			bestRider = r
		}
	}

	if bestRider == nil {
		return nil, ErrRiderNotFound
	}

	return bestRider, nil
}
