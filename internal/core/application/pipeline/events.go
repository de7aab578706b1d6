package pipeline

import "github.com/google/uuid"

// EventKind identifies a pipeline milestone.
type EventKind int

const (
	// FoodPrepared signals the kitchen stage finished and the order is
	// waiting for a rider.
	FoodPrepared EventKind = iota + 1

	// DeliveryRequested asks the loop to (re)run the delivery stage for an
	// order that is ready for pickup. Emitted by the redispatch job.
	DeliveryRequested

	// OrderDelivered signals the rider completed the final transit leg.
	OrderDelivered
)

// String returns the human-readable name of the event kind.
func (k EventKind) String() string {
	switch k {
	case FoodPrepared:
		return "FoodPrepared"
	case DeliveryRequested:
		return "DeliveryRequested"
	case OrderDelivered:
		return "OrderDelivered"
	default:
		return "Unknown"
	}
}

// Event is the envelope flowing through the orchestrator loop. Stages emit
// events instead of calling the next stage directly, which keeps the pipeline
// flat: no stage ever re-enters another.
type Event struct {
	ID      uuid.UUID
	OrderID int64
	Kind    EventKind
}

// NewEvent creates an event envelope for the given order and kind.
func NewEvent(orderID int64, kind EventKind) Event {
	return Event{
		ID:      uuid.New(),
		OrderID: orderID,
		Kind:    kind,
	}
}
