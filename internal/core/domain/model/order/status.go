package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with declared transitions so orders can only
// move forward along the fulfillment pipeline:
//
//	Pending -> Preparing -> ReadyForPickup -> AssignedToDelivery -> PickedUp -> Delivered
//
// Delivered is terminal. Attempting an undeclared transition is an error,
// never a silent overwrite.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status of a freshly created order,
	// waiting for payment and processing.
	Pending

	// Preparing indicates the kitchen is working on the order.
	Preparing

	// ReadyForPickup indicates the food is prepared and waiting for a rider.
	// An order stays here while no rider is available.
	ReadyForPickup

	// AssignedToDelivery indicates a rider has been assigned.
	AssignedToDelivery

	// PickedUp indicates the rider has collected the order from the restaurant.
	PickedUp

	// Delivered indicates the order reached the customer.
	// This is a terminal state with no further transitions.
	Delivered
)

// getStatusStrings returns string representations for every Status value,
// including Unknown, to support display and logging.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "Unknown",
		Pending:            "Pending",
		Preparing:          "Preparing",
		ReadyForPickup:     "ReadyForPickup",
		AssignedToDelivery: "AssignedToDelivery",
		PickedUp:           "PickedUp",
		Delivered:          "Delivered",
	}
}

// getDeclaredTransitions returns the legal (state -> next state) edges.
// Every status has at most one forward edge; Delivered has none.
func getDeclaredTransitions() map[Status]Status {
	return map[Status]Status{
		Pending:            Preparing,
		Preparing:          ReadyForPickup,
		ReadyForPickup:     AssignedToDelivery,
		AssignedToDelivery: PickedUp,
		PickedUp:           Delivered,
	}
}

// Validate checks if the Status value is a declared pipeline state.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if s < Pending || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are declared for s.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// CanTransitionTo reports whether (s -> next) is a declared transition.
func (s Status) CanTransitionTo(next Status) bool {
	declared, ok := getDeclaredTransitions()[s]
	return ok && declared == next
}

// TransitionTo returns the next status if (s -> next) is declared.
// Skipping a stage, reversing, or leaving a terminal state all fail:
//
//	next, err := status.TransitionTo(order.Preparing)
//	if err != nil {
//	    // undeclared transition, state unchanged
//	}
func (s Status) TransitionTo(next Status) (Status, error) {
	if !s.CanTransitionTo(next) {
		return 0, errs.NewValueIsInvalidErrorWithCause("status transition",
			fmt.Errorf("%s -> %s is not a declared transition", s, next))
	}
	return next, nil
}
