package ports

import (
	"context"
	"time"
)

// Clock is the timer seam for simulated stage delays (kitchen preparation,
// transit legs). Implementations must honor cancellation: Sleep returns
// ctx.Err() as soon as the context is done, so stages can be interrupted
// without occupying a worker.
type Clock interface {
	Sleep(ctx context.Context, d time.Duration) error
}
