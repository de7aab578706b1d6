package restaurant

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrRestaurantIsNotConstructed is returned when using an improperly
// initialized Restaurant.
var ErrRestaurantIsNotConstructed = errors.New(
	"Restaurant must be created via NewRestaurant constructor")

// Restaurant is an aggregate root describing a food outlet: identity, display
// name, location, an ordered menu, and an open/closed flag that gates order
// admission. A newly created restaurant is open.
//
// Restaurants are registered into the restaurant registry keyed by name;
// registering the same name again replaces the prior entry.
type Restaurant struct {
	id       int64
	name     string
	location kernel.Location
	menu     []Dish
	open     bool
	guard    guard.ConstructorGuard
}

// NewRestaurant creates a Restaurant with an empty menu, open for orders.
func NewRestaurant(id int64, name string, location kernel.Location) (*Restaurant, error) {
	if id <= 0 {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}
	if err := location.Validate(); err != nil {
		return nil, err
	}

	return &Restaurant{
		id:       id,
		name:     name,
		location: location,
		open:     true,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Restaurant was created through its constructor.
func (r *Restaurant) Validate() error {
	if r == nil {
		return ErrRestaurantIsNotConstructed
	}
	return r.guard.Validate(ErrRestaurantIsNotConstructed)
}

// ID returns the restaurant identifier.
func (r *Restaurant) ID() int64 {
	return r.id
}

// Name returns the display name. The registry keys restaurants by this value.
func (r *Restaurant) Name() string {
	return r.name
}

// Location returns the restaurant's pickup location.
func (r *Restaurant) Location() kernel.Location {
	return r.location
}

// IsOpen reports whether the restaurant currently accepts orders.
func (r *Restaurant) IsOpen() bool {
	return r.open
}

// Close stops the restaurant from accepting new orders.
func (r *Restaurant) Close() {
	r.open = false
}

// Reopen allows the restaurant to accept orders again.
func (r *Restaurant) Reopen() {
	r.open = true
}

// AddDish appends a dish to the menu, keeping insertion order.
func (r *Restaurant) AddDish(dish Dish) error {
	if err := dish.Validate(); err != nil {
		return err
	}

	r.menu = append(r.menu, dish)
	return nil
}

// Menu returns a copy of the menu in insertion order.
func (r *Restaurant) Menu() []Dish {
	menu := make([]Dish, len(r.menu))
	copy(menu, r.menu)
	return menu
}
