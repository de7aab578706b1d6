package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Delivery runs the rider stage of the pipeline: assignment, pickup and the
// transit legs to the customer.
type Delivery struct {
	pool       ports.RiderPool
	notifier   ports.Notifier
	clock      ports.Clock
	transitLeg time.Duration
	logger     *slog.Logger
}

// NewDelivery creates the delivery stage.
func NewDelivery(
	pool ports.RiderPool,
	notifier ports.Notifier,
	clock ports.Clock,
	transitLeg time.Duration,
	logger *slog.Logger,
) (*Delivery, error) {
	if pool == nil {
		return nil, errs.NewValueIsRequiredError("pool")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	if transitLeg < 0 {
		return nil, errs.NewValueIsInvalidError("transitLeg")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Delivery{
		pool:       pool,
		notifier:   notifier,
		clock:      clock,
		transitLeg: transitLeg,
		logger:     logger.With("component", "delivery"),
	}, nil
}

// Start assigns the nearest available rider and drives the order through the
// transit legs up to the doorstep. The order must be ReadyForPickup.
//
// When no rider is available the order is left untouched and the pool's
// services.ErrRiderNotFound is returned; the caller decides the retry policy.
// The final transition to Delivered belongs to the orchestrator loop, not to
// this stage.
func (d *Delivery) Start(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	pickup := aggregate.Restaurant().Location()
	drop := aggregate.Customer().Location()

	assigned, err := d.pool.Assign(ctx, pickup, drop)
	if err != nil {
		d.logger.Warn("no rider available",
			"order_id", aggregate.ID(),
			"restaurant", aggregate.Restaurant().Name(),
		)
		return err
	}

	meta, err := order.NewDeliveryMetadata(assigned, pickup, drop)
	if err != nil {
		return err
	}
	if err := aggregate.AssignRider(meta); err != nil {
		return err
	}
	d.logger.Info("rider assigned",
		"order_id", aggregate.ID(),
		"rider_id", assigned.ID(),
		"rider", assigned.Name(),
	)
	d.notify(ctx, aggregate,
		fmt.Sprintf("Order %d is out for delivery with %s", aggregate.ID(), assigned.Name()))

	// Leg one: rider rides to the restaurant and collects the order.
	if err := d.clock.Sleep(ctx, d.transitLeg); err != nil {
		return err
	}
	if err := aggregate.MarkPickedUp(); err != nil {
		return err
	}
	d.logger.Info("order picked up", "order_id", aggregate.ID(), "rider_id", assigned.ID())
	d.notify(ctx, aggregate,
		fmt.Sprintf("Order %d has been picked up by %s", aggregate.ID(), assigned.Name()))

	// Leg two: restaurant to the customer's doorstep.
	if err := d.clock.Sleep(ctx, d.transitLeg); err != nil {
		return err
	}
	return nil
}

func (d *Delivery) notify(ctx context.Context, aggregate *order.Order, message string) {
	if err := d.notifier.Notify(ctx, aggregate.Customer().Name(), message); err != nil {
		d.logger.Warn("notification failed", "order_id", aggregate.ID(), "error", err)
	}
}
