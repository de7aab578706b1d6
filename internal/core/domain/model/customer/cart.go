package customer

import (
	"fmt"

	"fulfillment/internal/core/domain/model/restaurant"
	"fulfillment/internal/pkg/errs"
)

// ErrRestaurantNotSelected is returned when adding items to a cart that has
// no restaurant set.
var ErrRestaurantNotSelected = errs.NewValueIsRequiredError("restaurant")

// Line is one cart entry: a dish and the requested quantity.
type Line struct {
	dish     restaurant.Dish
	quantity int
}

// Dish returns the dish of this line.
func (l Line) Dish() restaurant.Dish {
	return l.dish
}

// Quantity returns the requested quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// Cart collects dishes from a single restaurant before checkout.
// A cart belongs to exactly one customer. Items may be added only once a
// restaurant is set; adding the same dish again aggregates the quantity.
// The cart is considered empty when it has no restaurant or no lines.
type Cart struct {
	restaurant *restaurant.Restaurant
	lines      []Line
}

// NewCart creates an empty cart with no restaurant selected.
func NewCart() *Cart {
	return &Cart{}
}

// SetRestaurant selects the restaurant the cart orders from.
// Switching to a different restaurant drops the collected lines, since a cart
// holds dishes from one restaurant only.
func (c *Cart) SetRestaurant(r *restaurant.Restaurant) error {
	if err := r.Validate(); err != nil {
		return err
	}

	if c.restaurant != nil && c.restaurant.Name() != r.Name() {
		c.lines = nil
	}
	c.restaurant = r
	return nil
}

// AddItem adds a dish with the requested quantity.
// A restaurant must be selected first, and the quantity must be positive;
// violations are rejected with no side effect. Adding a dish already in the
// cart aggregates its quantity.
func (c *Cart) AddItem(dish restaurant.Dish, quantity int) error {
	if c.restaurant == nil {
		return ErrRestaurantNotSelected
	}
	if err := dish.Validate(); err != nil {
		return err
	}
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}

	for i, line := range c.lines {
		if line.dish.Name() == dish.Name() {
			c.lines[i].quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, Line{dish: dish, quantity: quantity})
	return nil
}

// IsEmpty reports whether the cart has no restaurant or no lines.
func (c *Cart) IsEmpty() bool {
	return c.restaurant == nil || len(c.lines) == 0
}

// Clear drops the lines and the restaurant selection.
func (c *Cart) Clear() {
	c.lines = nil
	c.restaurant = nil
}

// Restaurant returns the selected restaurant, or nil when none is set.
func (c *Cart) Restaurant() *restaurant.Restaurant {
	return c.restaurant
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// TotalCost returns the food subtotal: sum of unit price times quantity.
func (c *Cart) TotalCost() float64 {
	var sum float64
	for _, line := range c.lines {
		sum += line.dish.Price() * float64(line.quantity)
	}
	return sum
}
