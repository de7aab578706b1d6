package order

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/restaurant"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// GSTRate is the tax rate applied to the food subtotal.
	GSTRate = 0.18
	// DeliveryCharge is the flat delivery fee added to every order.
	DeliveryCharge = 40.0
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through the NewOrder constructor.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDeliveryMetadataAlreadyAttached is returned on a second attempt to
	// attach delivery metadata; an order takes exactly one courier leg.
	ErrDeliveryMetadataAlreadyAttached = errors.New("delivery metadata is already attached")
)

// Line is one immutable snapshot entry of an order: the dish name, the unit
// price at checkout time, and the requested quantity. Later menu or cart
// changes never affect a placed order.
type Line struct {
	dishName  string
	unitPrice float64
	quantity  int
}

// NewLine creates a snapshot line.
func NewLine(dishName string, unitPrice float64, quantity int) (Line, error) {
	if dishName == "" {
		return Line{}, errs.NewValueIsRequiredError("dishName")
	}
	if unitPrice <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("unitPrice",
			fmt.Errorf("%v is not greater than 0", unitPrice))
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Line{dishName: dishName, unitPrice: unitPrice, quantity: quantity}, nil
}

// DishName returns the dish display name captured at checkout.
func (l Line) DishName() string {
	return l.dishName
}

// UnitPrice returns the unit price captured at checkout.
func (l Line) UnitPrice() float64 {
	return l.unitPrice
}

// Quantity returns the requested quantity.
func (l Line) Quantity() int {
	return l.quantity
}

// CostBreakdown is the order's price composition, computed exactly once at
// construction and never mutated afterward.
type CostBreakdown struct {
	FoodAmount     float64
	GST            float64
	DeliveryCharge float64
	Total          float64
}

// Order is the aggregate root of the fulfillment pipeline. It holds the
// ordering customer, the restaurant, an immutable snapshot of the cart lines,
// the computed cost breakdown, the payment flag, the pipeline status, and the
// delivery metadata once a rider is assigned.
//
// Invariants:
//   - Total is computed once at construction and never changes
//   - paid transitions false -> true only
//   - status moves only along declared FSM transitions
//   - delivery metadata is attached at most once
//
// The mutable fields (status, statusChangedAt, paid, meta) are guarded by mu:
// stage goroutines advance the status while the redispatch sweep reads it
// from the cron goroutine.
type Order struct {
	id         int64
	orderType  Type
	customer   *customer.Customer
	restaurant *restaurant.Restaurant
	lines      []Line
	cost       CostBreakdown
	guard      guard.ConstructorGuard

	mu              sync.Mutex
	paid            bool
	status          Status
	statusChangedAt time.Time
	meta            *DeliveryMetadata
}

// NewOrder creates an Order in Pending status from a snapshot of cart lines.
// The cost breakdown is computed here:
//
//	FoodAmount = sum(unitPrice * quantity)
//	GST        = FoodAmount * GSTRate
//	Total      = FoodAmount + GST + DeliveryCharge
func NewOrder(id int64, orderType Type, cust *customer.Customer, rest *restaurant.Restaurant, lines []Line) (*Order, error) {
	if id <= 0 {
		return nil, errs.NewValueIsRequiredError("id")
	}
	if err := orderType.Validate(); err != nil {
		return nil, err
	}
	if err := cust.Validate(); err != nil {
		return nil, err
	}
	if err := rest.Validate(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, errs.NewValueIsRequiredError("lines")
	}

	snapshot := make([]Line, len(lines))
	copy(snapshot, lines)

	var foodAmount float64
	for _, line := range snapshot {
		foodAmount += line.unitPrice * float64(line.quantity)
	}
	gst := foodAmount * GSTRate

	return &Order{
		id:         id,
		orderType:  orderType,
		customer:   cust,
		restaurant: rest,
		lines:      snapshot,
		cost: CostBreakdown{
			FoodAmount:     foodAmount,
			GST:            gst,
			DeliveryCharge: DeliveryCharge,
			Total:          foodAmount + gst + DeliveryCharge,
		},
		status:          Pending,
		statusChangedAt: time.Now(),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the Order was created through its constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// ID returns the order identifier.
func (o *Order) ID() int64 {
	return o.id
}

// OrderType returns how the order is fulfilled: rider delivery or counter
// pickup. Fixed at construction.
func (o *Order) OrderType() Type {
	return o.orderType
}

// Customer returns the ordering customer.
func (o *Order) Customer() *customer.Customer {
	return o.customer
}

// Restaurant returns the restaurant preparing the order.
func (o *Order) Restaurant() *restaurant.Restaurant {
	return o.restaurant
}

// Lines returns a copy of the snapshot lines.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// Cost returns the price breakdown computed at construction.
func (o *Order) Cost() CostBreakdown {
	return o.cost
}

// IsPaid reports whether payment has been recorded for the order.
func (o *Order) IsPaid() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.paid
}

// MarkPaid records payment. The flag only ever moves false -> true.
func (o *Order) MarkPaid() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.paid = true
}

// Status returns the current pipeline status.
func (o *Order) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// StatusChangedAt returns when the status last changed.
// Used to detect orders stuck waiting for a rider.
func (o *Order) StatusChangedAt() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.statusChangedAt
}

// DeliveryMetadata returns the courier leg, or nil before rider assignment.
func (o *Order) DeliveryMetadata() *DeliveryMetadata {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.meta
}

// StartPreparing moves the order into the kitchen.
func (o *Order) StartPreparing() error {
	return o.transitionTo(Preparing)
}

// MarkReadyForPickup records that the kitchen finished preparation.
func (o *Order) MarkReadyForPickup() error {
	return o.transitionTo(ReadyForPickup)
}

// AssignRider attaches the courier leg and moves the order to
// AssignedToDelivery. Metadata can be attached exactly once.
func (o *Order) AssignRider(meta *DeliveryMetadata) error {
	if err := meta.Validate(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.meta != nil {
		return ErrDeliveryMetadataAlreadyAttached
	}
	if err := o.applyTransition(AssignedToDelivery); err != nil {
		return err
	}

	o.meta = meta
	return nil
}

// MarkPickedUp records that the rider collected the order.
func (o *Order) MarkPickedUp() error {
	return o.transitionTo(PickedUp)
}

// MarkDelivered completes the pipeline. Delivered is terminal.
func (o *Order) MarkDelivered() error {
	return o.transitionTo(Delivered)
}

// transitionTo applies a declared FSM transition or fails without side effect.
func (o *Order) transitionTo(next Status) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.applyTransition(next)
}

// applyTransition is transitionTo for callers already holding mu.
func (o *Order) applyTransition(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.statusChangedAt = time.Now()
	return nil
}
