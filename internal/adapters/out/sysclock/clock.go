// Package sysclock provides the real-time Clock adapter.
package sysclock

import (
	"context"
	"time"
)

// Clock sleeps on the wall clock, honoring context cancellation.
type Clock struct{}

// New creates a wall-clock Clock.
func New() Clock {
	return Clock{}
}

// Sleep blocks for d or until ctx is done, whichever comes first.
func (Clock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
