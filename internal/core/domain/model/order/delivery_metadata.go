package order

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/rider"
	"fulfillment/internal/pkg/guard"
)

// ErrDeliveryMetadataIsNotConstructed is returned when using improperly
// initialized delivery metadata.
var ErrDeliveryMetadataIsNotConstructed = errors.New(
	"DeliveryMetadata must be created via NewDeliveryMetadata constructor")

// DeliveryMetadata records the courier leg of an order: the assigned rider,
// the pickup location (restaurant) and the drop location (customer).
// It is created once, when a rider is found, and attached to the order.
type DeliveryMetadata struct {
	assignedRider *rider.Rider
	pickup        kernel.Location
	drop          kernel.Location
	guard         guard.ConstructorGuard
}

// NewDeliveryMetadata creates delivery metadata for an assigned rider.
func NewDeliveryMetadata(assignedRider *rider.Rider, pickup kernel.Location, drop kernel.Location) (*DeliveryMetadata, error) {
	if err := assignedRider.Validate(); err != nil {
		return nil, err
	}
	if err := errors.Join(pickup.Validate(), drop.Validate()); err != nil {
		return nil, err
	}

	return &DeliveryMetadata{
		assignedRider: assignedRider,
		pickup:        pickup,
		drop:          drop,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the metadata was created through its constructor.
func (m *DeliveryMetadata) Validate() error {
	if m == nil {
		return ErrDeliveryMetadataIsNotConstructed
	}
	return m.guard.Validate(ErrDeliveryMetadataIsNotConstructed)
}

// AssignedRider returns the rider carrying the order.
func (m *DeliveryMetadata) AssignedRider() *rider.Rider {
	return m.assignedRider
}

// PickupLocation returns the restaurant location.
func (m *DeliveryMetadata) PickupLocation() kernel.Location {
	return m.pickup
}

// DropLocation returns the customer location.
func (m *DeliveryMetadata) DropLocation() kernel.Location {
	return m.drop
}
