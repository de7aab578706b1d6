// Package restaurantregistry provides the in-memory restaurant registry.
// The whole model lives in memory; process restart loses all state.
package restaurantregistry

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/restaurant"
	"fulfillment/internal/pkg/errs"
)

// Registry is a mutex-guarded map of restaurants keyed by name.
// Safe for concurrent registration and lookup.
type Registry struct {
	mu          sync.RWMutex
	restaurants map[string]*restaurant.Restaurant
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		restaurants: make(map[string]*restaurant.Restaurant),
	}
}

// Register inserts or overwrites a restaurant by name; last write wins.
func (reg *Registry) Register(_ context.Context, r *restaurant.Restaurant) error {
	if err := r.Validate(); err != nil {
		return err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.restaurants[r.Name()] = r
	return nil
}

// GetByName retrieves a restaurant by its registered name.
func (reg *Registry) GetByName(_ context.Context, name string) (*restaurant.Restaurant, error) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	r, ok := reg.restaurants[name]
	if !ok {
		return nil, errs.NewObjectNotFoundError("name", name)
	}
	return r, nil
}

// CanAccept reports whether the restaurant currently accepts orders.
// No error is raised for a restaurant that was never registered; the open
// flag alone decides.
func (reg *Registry) CanAccept(_ context.Context, r *restaurant.Restaurant) (bool, error) {
	if err := r.Validate(); err != nil {
		return false, err
	}

	return r.IsOpen(), nil
}
