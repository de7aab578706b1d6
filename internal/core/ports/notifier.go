package ports

import "context"

// Notifier delivers milestone messages to users. The engine treats it as
// fire-and-forget: it is invoked at food-ready, rider-assigned, picked-up and
// delivered, and never inspects delivery confirmation from the channel.
type Notifier interface {
	Notify(ctx context.Context, userName string, message string) error
}
