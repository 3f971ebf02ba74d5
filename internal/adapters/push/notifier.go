// Package push implements ports.NotificationService. The current transport
// just logs the notification; swapping in FCM/APNs only touches this file.
package push

import (
	"context"
	"log/slog"
)

// LogNotifier writes notifications to the structured log.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// SendPush records the notification. Never fails.
func (n *LogNotifier) SendPush(ctx context.Context, userID, title, body string) error {
	n.logger.Info("push notification",
		"user", userID,
		"title", title,
		"body", body,
	)
	return nil
}
