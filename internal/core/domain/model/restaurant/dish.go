package restaurant

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrDishIsNotConstructed is returned when using an improperly initialized Dish.
var ErrDishIsNotConstructed = errs.NewValueIsRequiredError(
	"dish must be created via the NewDish constructor")

// Dish is an immutable value object describing one menu entry:
// a display name and a unit price.
type Dish struct {
	name  string
	price float64
	guard guard.ConstructorGuard
}

// NewDish creates a Dish with a non-empty name and a positive price.
func NewDish(name string, price float64) (Dish, error) {
	if name == "" {
		return Dish{}, errs.NewValueIsRequiredError("name")
	}
	if price <= 0 {
		return Dish{}, errs.NewValueIsInvalidErrorWithCause("price",
			fmt.Errorf("%v is not greater than 0", price))
	}

	return Dish{
		name:  name,
		price: price,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Dish was created through its constructor.
func (d Dish) Validate() error {
	return d.guard.Validate(ErrDishIsNotConstructed)
}

// Name returns the dish display name.
func (d Dish) Name() string {
	return d.name
}

// Price returns the unit price.
func (d Dish) Price() float64 {
	return d.price
}
