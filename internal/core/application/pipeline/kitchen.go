package pipeline

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// Kitchen runs the preparation stage of the pipeline. Each distinct line on
// the order costs one preparation interval; quantity does not scale the time.
type Kitchen struct {
	clock       ports.Clock
	prepPerLine time.Duration
	logger      *slog.Logger
}

// NewKitchen creates the kitchen stage.
func NewKitchen(clock ports.Clock, prepPerLine time.Duration, logger *slog.Logger) (*Kitchen, error) {
	if clock == nil {
		return nil, errs.NewValueIsRequiredError("clock")
	}
	if prepPerLine < 0 {
		return nil, errs.NewValueIsInvalidError("prepPerLine")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Kitchen{
		clock:       clock,
		prepPerLine: prepPerLine,
		logger:      logger.With("component", "kitchen"),
	}, nil
}

// Prepare moves the order to Preparing, waits one interval per line, then
// marks it ReadyForPickup. Cancellation aborts mid-preparation and leaves the
// order in Preparing; there is no rollback.
func (k *Kitchen) Prepare(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	if err := aggregate.StartPreparing(); err != nil {
		return err
	}
	k.logger.Info("preparation started",
		"order_id", aggregate.ID(),
		"lines", len(aggregate.Lines()),
	)

	for _, line := range aggregate.Lines() {
		if err := k.clock.Sleep(ctx, k.prepPerLine); err != nil {
			k.logger.Warn("preparation aborted",
				"order_id", aggregate.ID(),
				"dish", line.DishName(),
				"error", err,
			)
			return err
		}
	}

	if err := aggregate.MarkReadyForPickup(); err != nil {
		return err
	}
	k.logger.Info("order ready for pickup", "order_id", aggregate.ID())
	return nil
}
