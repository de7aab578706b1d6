// Package notify provides the SMS-style notification adapter.
// Messages are written to the structured log; the engine never depends on
// delivery confirmation from the channel.
package notify

import (
	"context"
	"log/slog"
)

// SMSNotifier logs milestone messages addressed to a user.
type SMSNotifier struct {
	logger *slog.Logger
}

// NewSMSNotifier creates a notifier writing through the given logger.
func NewSMSNotifier(logger *slog.Logger) *SMSNotifier {
	return &SMSNotifier{
		logger: logger.With("component", "sms_notifier"),
	}
}

// Notify sends a message to the named user.
func (n *SMSNotifier) Notify(ctx context.Context, userName string, message string) error {
	n.logger.InfoContext(ctx, "SMS sent", "to", userName, "message", message)
	return nil
}
