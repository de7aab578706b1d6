// Package rider provides the Rider aggregate: a courier with a current
// location, an availability flag, and a service rating.
package rider

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// RatingMin is the lowest allowed rider rating.
	RatingMin = 0.0
	// RatingMax is the highest allowed rider rating.
	RatingMax = 5.0
)

// ErrRiderIsNotConstructed is returned when using an improperly initialized Rider.
var ErrRiderIsNotConstructed = errors.New("Rider must be created via NewRider constructor")

// Rider is a courier in the assignment pool.
//
// A rider starts available; the pool flips the flag to unavailable when the
// rider wins an assignment. Availability only goes back to true through an
// explicit release on the pool, never as a side effect of delivery completion.
type Rider struct {
	id        int64
	name      string
	location  kernel.Location
	available bool
	rating    float64
	guard     guard.ConstructorGuard
}

// NewRider creates an available Rider at the given location.
// The rating must lie within [RatingMin..RatingMax].
func NewRider(id int64, name string, location kernel.Location, rating float64) (*Rider, error) {
	if id <= 0 {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}
	if rating < RatingMin || rating > RatingMax {
		return nil, errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}

	return &Rider{
		id:        id,
		name:      name,
		location:  location,
		available: true,
		rating:    rating,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Rider was created through its constructor.
func (r *Rider) Validate() error {
	if r == nil {
		return ErrRiderIsNotConstructed
	}
	return r.guard.Validate(ErrRiderIsNotConstructed)
}

// ID returns the rider identifier.
func (r *Rider) ID() int64 {
	return r.id
}

// Name returns the rider's display name.
func (r *Rider) Name() string {
	return r.name
}

// Location returns the rider's current location.
func (r *Rider) Location() kernel.Location {
	return r.location
}

// MoveTo updates the rider's current location.
func (r *Rider) MoveTo(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	r.location = location
	return nil
}

// IsAvailable reports whether the rider can take an assignment.
func (r *Rider) IsAvailable() bool {
	return r.available
}

// MarkBusy flips the rider unavailable. Called by the pool when the rider
// wins an assignment; the check-then-flip happens inside the pool's critical
// section.
func (r *Rider) MarkBusy() {
	r.available = false
}

// MarkAvailable flips the rider available again.
func (r *Rider) MarkAvailable() {
	r.available = true
}

// Rating returns the rider's service rating.
func (r *Rider) Rating() float64 {
	return r.rating
}

// SetRating updates the rating. Values outside [RatingMin..RatingMax] are
// rejected with no side effect.
func (r *Rider) SetRating(rating float64) error {
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}
	r.rating = rating
	return nil
}
