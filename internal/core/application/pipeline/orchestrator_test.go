package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory/orderrepo"
	"fulfillment/internal/adapters/out/memory/restaurantregistry"
	"fulfillment/internal/adapters/out/memory/riderpool"
	"fulfillment/internal/core/application/pipeline"
	"fulfillment/internal/core/domain/model/customer"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/restaurant"
	"fulfillment/internal/core/domain/model/rider"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instantClock skips every stage delay so pipeline tests run in real
// milliseconds while still exercising cancellation.
type instantClock struct{}

func (instantClock) Sleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

// recordingNotifier captures messages in arrival order.
type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(_ context.Context, _ string, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return nil
}

func (n *recordingNotifier) Messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return slices.Clone(n.messages)
}

func (n *recordingNotifier) Contains(fragment string) bool {
	for _, m := range n.Messages() {
		if strings.Contains(m, fragment) {
			return true
		}
	}
	return false
}

type engine struct {
	orchestrator *pipeline.Orchestrator
	registry     *restaurantregistry.Registry
	repo         *orderrepo.Repository
	pool         *riderpool.Pool
	notifier     *recordingNotifier
}

func newEngine(t *testing.T) *engine {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := restaurantregistry.NewRegistry()
	repo := orderrepo.NewRepository()
	pool := riderpool.NewPool(nil)
	notifier := &recordingNotifier{}

	kitchen, err := pipeline.NewKitchen(instantClock{}, time.Millisecond, logger)
	require.NoError(t, err)
	delivery, err := pipeline.NewDelivery(pool, notifier, instantClock{}, time.Millisecond, logger)
	require.NoError(t, err)
	orchestrator, err := pipeline.NewOrchestrator(registry, repo, notifier, kitchen, delivery, logger)
	require.NoError(t, err)

	return &engine{
		orchestrator: orchestrator,
		registry:     registry,
		repo:         repo,
		pool:         pool,
		notifier:     notifier,
	}
}

func locationAt(t *testing.T, lat, lon float64) kernel.Location {
	t.Helper()
	loc, err := kernel.NewLocation(lat, lon)
	require.NoError(t, err)
	return loc
}

func openRestaurant(t *testing.T, e *engine) *restaurant.Restaurant {
	t.Helper()

	rest, err := restaurant.NewRestaurant(1, "Bistro Madras", locationAt(t, 28.60, 77.20))
	require.NoError(t, err)
	for _, d := range []struct {
		name  string
		price float64
	}{
		{"Masala Dosa", 120},
		{"Paneer Tikka", 220},
	} {
		dish, err := restaurant.NewDish(d.name, d.price)
		require.NoError(t, err)
		require.NoError(t, rest.AddDish(dish))
	}
	require.NoError(t, e.registry.Register(t.Context(), rest))
	return rest
}

func customerWithFullCart(t *testing.T, rest *restaurant.Restaurant) *customer.Customer {
	t.Helper()

	cust, err := customer.NewCustomer(1, "Asha", "14 Lake Road", locationAt(t, 28.65, 77.25))
	require.NoError(t, err)
	require.NoError(t, cust.Cart().SetRestaurant(rest))
	require.NoError(t, cust.Cart().AddItem(rest.Menu()[0], 2))
	require.NoError(t, cust.Cart().AddItem(rest.Menu()[1], 1))
	return cust
}

func addRider(t *testing.T, e *engine, id int64, name string) *rider.Rider {
	t.Helper()
	r, err := rider.NewRider(id, name, locationAt(t, 28.62, 77.22), 4.5)
	require.NoError(t, err)
	require.NoError(t, e.pool.Add(t.Context(), r))
	return r
}

func TestOrchestrator_Checkout(t *testing.T) {
	ctx := t.Context()

	t.Run("creates_a_pending_order_and_clears_the_cart", func(t *testing.T) {
		// Given
		e := newEngine(t)
		rest := openRestaurant(t, e)
		cust := customerWithFullCart(t, rest)

		// When
		aggregate, err := e.orchestrator.Checkout(ctx, cust, order.TypeDelivery)

		// Then
		require.NoError(t, err)
		assert.Equal(t, order.Pending, aggregate.Status())
		assert.InDelta(t, 460.0, aggregate.Cost().FoodAmount, 1e-6)
		assert.InDelta(t, 582.8, aggregate.Cost().Total, 1e-6)
		assert.True(t, cust.Cart().IsEmpty())

		stored, err := e.repo.Get(ctx, aggregate.ID())
		require.NoError(t, err)
		assert.Equal(t, aggregate, stored)
	})

	t.Run("rejects_a_cart_without_a_restaurant", func(t *testing.T) {
		// Given
		e := newEngine(t)
		cust, err := customer.NewCustomer(1, "Asha", "14 Lake Road", locationAt(t, 28.65, 77.25))
		require.NoError(t, err)

		// When
		_, err = e.orchestrator.Checkout(ctx, cust, order.TypeDelivery)

		// Then
		assert.ErrorIs(t, err, pipeline.ErrNoRestaurantSelected)
	})

	t.Run("rejects_an_empty_cart", func(t *testing.T) {
		// Given a selected restaurant but no items
		e := newEngine(t)
		rest := openRestaurant(t, e)
		cust, err := customer.NewCustomer(1, "Asha", "14 Lake Road", locationAt(t, 28.65, 77.25))
		require.NoError(t, err)
		require.NoError(t, cust.Cart().SetRestaurant(rest))

		// When
		_, err = e.orchestrator.Checkout(ctx, cust, order.TypeDelivery)

		// Then
		assert.ErrorIs(t, err, pipeline.ErrEmptyCart)
	})

	t.Run("rejects_a_closed_restaurant_and_keeps_the_cart", func(t *testing.T) {
		// Given
		e := newEngine(t)
		rest := openRestaurant(t, e)
		cust := customerWithFullCart(t, rest)
		rest.Close()

		// When
		_, err := e.orchestrator.Checkout(ctx, cust, order.TypeDelivery)

		// Then
		assert.ErrorIs(t, err, pipeline.ErrRestaurantClosed)
		assert.False(t, cust.Cart().IsEmpty())

		// And: reopening lets the same cart through
		rest.Reopen()
		_, err = e.orchestrator.Checkout(ctx, cust, order.TypeDelivery)
		require.NoError(t, err)
	})

	t.Run("rejects_an_unknown_order_type", func(t *testing.T) {
		// Given
		e := newEngine(t)
		rest := openRestaurant(t, e)
		cust := customerWithFullCart(t, rest)

		// When
		_, err := e.orchestrator.Checkout(ctx, cust, order.Type(99))

		// Then: no order, and the cart stays intact
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.False(t, cust.Cart().IsEmpty())
	})

	t.Run("assigns_increasing_order_ids", func(t *testing.T) {
		// Given
		e := newEngine(t)
		rest := openRestaurant(t, e)

		// When
		first, err := e.orchestrator.Checkout(ctx, customerWithFullCart(t, rest), order.TypeDelivery)
		require.NoError(t, err)
		second, err := e.orchestrator.Checkout(ctx, customerWithFullCart(t, rest), order.TypeDelivery)
		require.NoError(t, err)

		// Then
		assert.Greater(t, second.ID(), first.ID())
	})
}

func TestOrchestrator_Pipeline(t *testing.T) {
	t.Run("drives_an_order_from_checkout_to_delivered", func(t *testing.T) {
		// Given a running engine with one rider
		e := newEngine(t)
		rest := openRestaurant(t, e)
		cust := customerWithFullCart(t, rest)
		assigned := addRider(t, e, 1, "Ravi")

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go e.orchestrator.Run(ctx)

		aggregate, err := e.orchestrator.Checkout(ctx, cust, order.TypeDelivery)
		require.NoError(t, err)
		aggregate.MarkPaid()

		// When
		require.NoError(t, e.orchestrator.Process(ctx, aggregate.ID()))

		// Then
		require.Eventually(t, func() bool {
			return e.notifier.Contains("has been delivered")
		}, 2*time.Second, 5*time.Millisecond)

		assert.Equal(t, order.Delivered, aggregate.Status())
		require.NotNil(t, aggregate.DeliveryMetadata())
		assert.Equal(t, assigned, aggregate.DeliveryMetadata().AssignedRider())
		assert.False(t, assigned.IsAvailable())

		messages := e.notifier.Messages()
		require.Len(t, messages, 4)
		assert.Contains(t, messages[0], "prepared and waiting for pickup")
		assert.Contains(t, messages[1], "out for delivery with Ravi")
		assert.Contains(t, messages[2], "picked up by Ravi")
		assert.Contains(t, messages[3], "has been delivered")
	})

	t.Run("pickup_order_stops_at_the_counter", func(t *testing.T) {
		// Given a running engine with a rider who should stay idle
		e := newEngine(t)
		rest := openRestaurant(t, e)
		idle := addRider(t, e, 1, "Ravi")

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go e.orchestrator.Run(ctx)

		aggregate, err := e.orchestrator.Checkout(ctx, customerWithFullCart(t, rest), order.TypePickup)
		require.NoError(t, err)
		aggregate.MarkPaid()

		// When
		require.NoError(t, e.orchestrator.Process(ctx, aggregate.ID()))

		// Then: the customer is told to collect, no rider leg happens
		require.Eventually(t, func() bool {
			return e.notifier.Contains("ready for collection at Bistro Madras")
		}, 2*time.Second, 5*time.Millisecond)

		assert.Equal(t, order.ReadyForPickup, aggregate.Status())
		assert.Nil(t, aggregate.DeliveryMetadata())
		assert.True(t, idle.IsAvailable())

		// And the sweep leaves it alone
		redispatched, err := e.orchestrator.RedispatchStuck(ctx, time.Hour)
		require.NoError(t, err)
		assert.Zero(t, redispatched)
	})

	t.Run("rejects_processing_the_same_order_twice", func(t *testing.T) {
		// Given
		e := newEngine(t)
		rest := openRestaurant(t, e)
		addRider(t, e, 1, "Ravi")

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go e.orchestrator.Run(ctx)

		aggregate, err := e.orchestrator.Checkout(ctx, customerWithFullCart(t, rest), order.TypeDelivery)
		require.NoError(t, err)
		aggregate.MarkPaid()
		require.NoError(t, e.orchestrator.Process(ctx, aggregate.ID()))

		// When
		err = e.orchestrator.Process(ctx, aggregate.ID())

		// Then
		require.Error(t, err)
	})

	t.Run("unknown_order_id_is_rejected", func(t *testing.T) {
		e := newEngine(t)
		require.Error(t, e.orchestrator.Process(t.Context(), 404))
	})

	t.Run("runs_concurrent_orders_independently", func(t *testing.T) {
		// Given two customers, two riders
		e := newEngine(t)
		rest := openRestaurant(t, e)
		addRider(t, e, 1, "Ravi")
		addRider(t, e, 2, "Meena")

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go e.orchestrator.Run(ctx)

		first, err := e.orchestrator.Checkout(ctx, customerWithFullCart(t, rest), order.TypeDelivery)
		require.NoError(t, err)
		second, err := e.orchestrator.Checkout(ctx, customerWithFullCart(t, rest), order.TypeDelivery)
		require.NoError(t, err)
		first.MarkPaid()
		second.MarkPaid()

		// When
		require.NoError(t, e.orchestrator.Process(ctx, first.ID()))
		require.NoError(t, e.orchestrator.Process(ctx, second.ID()))

		// Then: both reach the doorstep
		require.Eventually(t, func() bool {
			var delivered int
			for _, m := range e.notifier.Messages() {
				if strings.Contains(m, "has been delivered") {
					delivered++
				}
			}
			return delivered == 2
		}, 2*time.Second, 5*time.Millisecond)
		assert.Equal(t, order.Delivered, first.Status())
		assert.Equal(t, order.Delivered, second.Status())
	})
}

func TestOrchestrator_RedispatchStuck(t *testing.T) {
	t.Run("retries_an_order_stuck_without_a_rider", func(t *testing.T) {
		// Given an engine with no riders at all
		e := newEngine(t)
		rest := openRestaurant(t, e)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go e.orchestrator.Run(ctx)

		aggregate, err := e.orchestrator.Checkout(ctx, customerWithFullCart(t, rest), order.TypeDelivery)
		require.NoError(t, err)
		aggregate.MarkPaid()
		require.NoError(t, e.orchestrator.Process(ctx, aggregate.ID()))

		// And the food is ready but nobody can carry it
		require.Eventually(t, func() bool {
			return e.notifier.Contains("waiting for pickup")
		}, 2*time.Second, 5*time.Millisecond)

		// When a rider shows up and the job sweeps
		addRider(t, e, 1, "Ravi")
		require.Eventually(t, func() bool {
			if _, err := e.orchestrator.RedispatchStuck(ctx, time.Hour); err != nil {
				return false
			}
			return e.notifier.Contains("has been delivered")
		}, 2*time.Second, 10*time.Millisecond)

		// Then
		assert.Equal(t, order.Delivered, aggregate.Status())
	})

	t.Run("sweeping_during_a_live_pipeline_is_safe", func(t *testing.T) {
		// Given a running engine delivering an order
		e := newEngine(t)
		rest := openRestaurant(t, e)
		addRider(t, e, 1, "Ravi")

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go e.orchestrator.Run(ctx)

		aggregate, err := e.orchestrator.Checkout(ctx, customerWithFullCart(t, rest), order.TypeDelivery)
		require.NoError(t, err)
		aggregate.MarkPaid()
		require.NoError(t, e.orchestrator.Process(ctx, aggregate.ID()))

		// When the sweep hammers the store while stages advance the status
		done := make(chan struct{})
		var sweeping sync.WaitGroup
		sweeping.Add(1)
		go func() {
			defer sweeping.Done()
			for {
				select {
				case <-done:
					return
				default:
					if _, err := e.orchestrator.RedispatchStuck(ctx, time.Hour); err != nil {
						return
					}
				}
			}
		}()

		// Then the order still completes
		require.Eventually(t, func() bool {
			return e.notifier.Contains("has been delivered")
		}, 2*time.Second, 5*time.Millisecond)
		close(done)
		sweeping.Wait()
		assert.Equal(t, order.Delivered, aggregate.Status())
	})

	t.Run("abandons_an_order_stuck_past_the_deadline", func(t *testing.T) {
		// Given a riderless engine
		e := newEngine(t)
		rest := openRestaurant(t, e)

		ctx, cancel := context.WithCancel(t.Context())
		defer cancel()
		go e.orchestrator.Run(ctx)

		aggregate, err := e.orchestrator.Checkout(ctx, customerWithFullCart(t, rest), order.TypeDelivery)
		require.NoError(t, err)
		aggregate.MarkPaid()
		require.NoError(t, e.orchestrator.Process(ctx, aggregate.ID()))
		require.Eventually(t, func() bool {
			return e.notifier.Contains("waiting for pickup")
		}, 2*time.Second, 5*time.Millisecond)

		// When the sweep runs with a zero deadline
		require.Eventually(t, func() bool {
			if _, err := e.orchestrator.RedispatchStuck(ctx, 0); err != nil {
				return false
			}
			return slices.Contains(e.orchestrator.Abandoned(), aggregate.ID())
		}, 2*time.Second, 10*time.Millisecond)

		// Then a late rider never picks it up
		addRider(t, e, 1, "Ravi")
		redispatched, err := e.orchestrator.RedispatchStuck(ctx, time.Hour)
		require.NoError(t, err)
		assert.Zero(t, redispatched)
	})

	t.Run("empty_store_sweeps_nothing", func(t *testing.T) {
		e := newEngine(t)
		redispatched, err := e.orchestrator.RedispatchStuck(t.Context(), time.Hour)
		require.NoError(t, err)
		assert.Zero(t, redispatched)
	})
}
