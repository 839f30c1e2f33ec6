// Package notify delivers fire-and-forget user notifications. Delivery is
// best effort: failures are logged, never propagated to the caller.
package notify

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to the log. It stands in for a real push
// delivery backend, which is outside the core's responsibility.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier writing to logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// Notify records the notification.
func (n *LogNotifier) Notify(_ context.Context, userID, title, body string) {
	n.logger.Info("notification", "user_id", userID, "title", title, "body", body)
}
