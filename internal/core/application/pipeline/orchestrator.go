package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/idgen"
)

var (
	// ErrNoRestaurantSelected is returned by Checkout when the cart has no
	// restaurant attached.
	ErrNoRestaurantSelected = errors.New("no restaurant selected in cart")

	// ErrEmptyCart is returned by Checkout when the cart has no items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrRestaurantClosed is returned by Checkout when the restaurant does
	// not currently accept orders.
	ErrRestaurantClosed = errors.New("restaurant is closed")
)

const eventBufferSize = 128

// Orchestrator drives orders through the fulfillment pipeline. Stages run in
// per-order goroutines and report milestones as events; a single Run loop
// consumes them and decides what happens next. The loop is the only place
// that wires stage outcomes together, so no stage ever calls back into
// another.
type Orchestrator struct {
	registry ports.RestaurantRegistry
	repo     ports.OrderRepository
	notifier ports.Notifier
	kitchen  *Kitchen
	delivery *Delivery
	ids      *idgen.Generator
	logger   *slog.Logger

	events chan Event

	mu        sync.Mutex
	inFlight  map[int64]struct{}
	abandoned map[int64]struct{}
}

// NewOrchestrator creates the pipeline orchestrator.
func NewOrchestrator(
	registry ports.RestaurantRegistry,
	repo ports.OrderRepository,
	notifier ports.Notifier,
	kitchen *Kitchen,
	delivery *Delivery,
	logger *slog.Logger,
) (*Orchestrator, error) {
	if registry == nil {
		return nil, errs.NewValueIsRequiredError("registry")
	}
	if repo == nil {
		return nil, errs.NewValueIsRequiredError("repo")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if kitchen == nil {
		return nil, errs.NewValueIsRequiredError("kitchen")
	}
	if delivery == nil {
		return nil, errs.NewValueIsRequiredError("delivery")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Orchestrator{
		registry:  registry,
		repo:      repo,
		notifier:  notifier,
		kitchen:   kitchen,
		delivery:  delivery,
		ids:       idgen.New(),
		logger:    logger.With("component", "orchestrator"),
		events:    make(chan Event, eventBufferSize),
		inFlight:  make(map[int64]struct{}),
		abandoned: make(map[int64]struct{}),
	}, nil
}

// Checkout validates the customer's cart, gates it through the restaurant
// registry and converts it into a stored Pending order of the given
// fulfillment type. The cart is cleared only on success; on any failure it
// stays intact so the customer can fix it.
func (orc *Orchestrator) Checkout(ctx context.Context, cust *customer.Customer, orderType order.Type) (*order.Order, error) {
	if err := cust.Validate(); err != nil {
		return nil, err
	}
	if err := orderType.Validate(); err != nil {
		return nil, err
	}

	cart := cust.Cart()
	rest := cart.Restaurant()
	if rest == nil {
		return nil, ErrNoRestaurantSelected
	}
	if cart.IsEmpty() {
		return nil, ErrEmptyCart
	}

	accepts, err := orc.registry.CanAccept(ctx, rest)
	if err != nil {
		return nil, err
	}
	if !accepts {
		return nil, fmt.Errorf("%w: %s", ErrRestaurantClosed, rest.Name())
	}

	lines := make([]order.Line, 0, len(cart.Lines()))
	for _, item := range cart.Lines() {
		line, err := order.NewLine(item.Dish().Name(), item.Dish().Price(), item.Quantity())
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	aggregate, err := order.NewOrder(orc.ids.Next(), orderType, cust, rest, lines)
	if err != nil {
		return nil, err
	}
	if err := orc.repo.Add(ctx, aggregate); err != nil {
		return nil, err
	}

	cart.Clear()
	orc.logger.Info("order placed",
		"order_id", aggregate.ID(),
		"type", orderType,
		"customer", cust.Name(),
		"restaurant", rest.Name(),
		"total", aggregate.Cost().Total,
	)
	return aggregate, nil
}

// Process starts the pipeline for a paid order: the kitchen stage runs in its
// own goroutine and reports back through the event loop. Payment is the
// caller's business; Process trusts that it happened.
func (orc *Orchestrator) Process(ctx context.Context, orderID int64) error {
	aggregate, err := orc.repo.Get(ctx, orderID)
	if err != nil {
		return err
	}

	if !orc.claim(orderID) {
		return errs.NewValueIsInvalidErrorWithCause("orderID",
			fmt.Errorf("order %d is already being processed", orderID))
	}

	go func() {
		if err := orc.kitchen.Prepare(ctx, aggregate); err != nil {
			orc.logger.Error("kitchen stage failed", "order_id", orderID, "error", err)
			orc.release(orderID)
			return
		}
		orc.emit(ctx, NewEvent(orderID, FoodPrepared))
	}()
	return nil
}

// Run consumes pipeline events until the context is cancelled. It must run
// exactly once, concurrently with Checkout/Process callers.
func (orc *Orchestrator) Run(ctx context.Context) {
	orc.logger.Info("event loop started")
	for {
		select {
		case <-ctx.Done():
			orc.logger.Info("event loop stopped", "reason", ctx.Err())
			return
		case evt := <-orc.events:
			orc.handle(ctx, evt)
		}
	}
}

// RedispatchStuck retries orders stuck in ReadyForPickup because no rider was
// available, returning how many were re-queued. Orders stuck longer than
// maxAge are abandoned: logged once and never retried again. Called
// periodically by the redispatch job.
func (orc *Orchestrator) RedispatchStuck(ctx context.Context, maxAge time.Duration) (int, error) {
	stuck, err := orc.repo.GetAllInStatus(ctx, order.ReadyForPickup)
	if err != nil {
		return 0, err
	}

	redispatched := 0
	for _, aggregate := range stuck {
		// Pickup orders wait for the customer, not for a rider.
		if aggregate.OrderType() != order.TypeDelivery {
			continue
		}

		id := aggregate.ID()
		age := time.Since(aggregate.StatusChangedAt())

		orc.mu.Lock()
		_, busy := orc.inFlight[id]
		_, gone := orc.abandoned[id]
		if busy || gone {
			orc.mu.Unlock()
			continue
		}
		if age > maxAge {
			orc.abandoned[id] = struct{}{}
			orc.mu.Unlock()
			orc.logger.Warn("order abandoned, no rider found in time",
				"order_id", id, "age", age)
			continue
		}
		orc.inFlight[id] = struct{}{}
		orc.mu.Unlock()

		orc.logger.Info("redispatching stuck order", "order_id", id, "age", age)
		orc.emit(ctx, NewEvent(id, DeliveryRequested))
		redispatched++
	}
	return redispatched, nil
}

// Abandoned returns the ids of orders given up on by RedispatchStuck.
func (orc *Orchestrator) Abandoned() []int64 {
	orc.mu.Lock()
	defer orc.mu.Unlock()

	ids := make([]int64, 0, len(orc.abandoned))
	for id := range orc.abandoned {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (orc *Orchestrator) handle(ctx context.Context, evt Event) {
	aggregate, err := orc.repo.Get(ctx, evt.OrderID)
	if err != nil {
		orc.logger.Error("event for unknown order",
			"event_id", evt.ID, "order_id", evt.OrderID, "error", err)
		return
	}

	switch evt.Kind {
	case FoodPrepared:
		// Pickup orders end the engine's involvement at the counter.
		if aggregate.OrderType() == order.TypePickup {
			orc.notify(ctx, aggregate,
				fmt.Sprintf("Order %d is ready for collection at %s",
					aggregate.ID(), aggregate.Restaurant().Name()))
			orc.release(aggregate.ID())
			return
		}
		orc.notify(ctx, aggregate,
			fmt.Sprintf("Order %d is prepared and waiting for pickup", aggregate.ID()))
		go orc.runDelivery(ctx, aggregate)

	case DeliveryRequested:
		go orc.runDelivery(ctx, aggregate)

	case OrderDelivered:
		if err := aggregate.MarkDelivered(); err != nil {
			orc.logger.Error("delivered transition failed",
				"order_id", aggregate.ID(), "error", err)
		} else {
			orc.logger.Info("order delivered", "order_id", aggregate.ID())
			orc.notify(ctx, aggregate,
				fmt.Sprintf("Order %d has been delivered. Enjoy your meal!", aggregate.ID()))
		}
		orc.release(aggregate.ID())

	default:
		orc.logger.Error("unknown event kind", "event_id", evt.ID, "kind", evt.Kind)
	}
}

func (orc *Orchestrator) runDelivery(ctx context.Context, aggregate *order.Order) {
	if err := orc.delivery.Start(ctx, aggregate); err != nil {
		// No rider right now: back off and let the redispatch job retry.
		if errors.Is(err, services.ErrRiderNotFound) {
			orc.release(aggregate.ID())
			return
		}
		orc.logger.Error("delivery stage failed", "order_id", aggregate.ID(), "error", err)
		orc.release(aggregate.ID())
		return
	}
	orc.emit(ctx, NewEvent(aggregate.ID(), OrderDelivered))
}

// claim marks an order as in flight. Returns false if it already is, or if
// it was abandoned by the redispatch job.
func (orc *Orchestrator) claim(orderID int64) bool {
	orc.mu.Lock()
	defer orc.mu.Unlock()

	if _, ok := orc.inFlight[orderID]; ok {
		return false
	}
	if _, ok := orc.abandoned[orderID]; ok {
		return false
	}
	orc.inFlight[orderID] = struct{}{}
	return true
}

func (orc *Orchestrator) release(orderID int64) {
	orc.mu.Lock()
	defer orc.mu.Unlock()
	delete(orc.inFlight, orderID)
}

func (orc *Orchestrator) emit(ctx context.Context, evt Event) {
	select {
	case orc.events <- evt:
	case <-ctx.Done():
		orc.logger.Warn("event dropped on shutdown",
			"event_id", evt.ID, "order_id", evt.OrderID, "kind", evt.Kind)
	}
}

func (orc *Orchestrator) notify(ctx context.Context, aggregate *order.Order, message string) {
	if err := orc.notifier.Notify(ctx, aggregate.Customer().Name(), message); err != nil {
		orc.logger.Warn("notification failed", "order_id", aggregate.ID(), "error", err)
	}
}
