// Package orderrepo provides the in-memory order store.
package orderrepo

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// Repository is a mutex-guarded order store. An ordered id slice preserves
// insertion order for status scans.
type Repository struct {
	mu     sync.RWMutex
	orders map[int64]*order.Order
	ids    []int64
}

// NewRepository creates an empty order store.
func NewRepository() *Repository {
	return &Repository{
		orders: make(map[int64]*order.Order),
	}
}

// Add stores a new order. Reusing an id is an error; ids are never recycled.
func (repo *Repository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, exists := repo.orders[aggregate.ID()]; exists {
		return errs.NewValueIsInvalidError("order id is already used")
	}

	repo.orders[aggregate.ID()] = aggregate
	repo.ids = append(repo.ids, aggregate.ID())
	return nil
}

// Get retrieves an order by id.
func (repo *Repository) Get(_ context.Context, id int64) (*order.Order, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()

	aggregate, ok := repo.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("orderId", id)
	}
	return aggregate, nil
}

// GetAllInStatus retrieves every order in the given status, in insertion order.
func (repo *Repository) GetAllInStatus(_ context.Context, status order.Status) ([]*order.Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	var matched []*order.Order
	for _, id := range repo.ids {
		if aggregate := repo.orders[id]; aggregate.Status() == status {
			matched = append(matched, aggregate)
		}
	}
	return matched, nil
}
