// Package notify tells people about new orders: by e-mail through an SMTP
// relay, or into the log where no relay is configured.
package notify

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/order"
)

// LogNotifier implements ports.Notifier by writing a log line.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (n *LogNotifier) NotifyOrderCreated(ctx context.Context, event order.CreatedEvent) error {
	n.logger.InfoContext(ctx, "New order",
		"event_id", event.EventID.String(),
		"order_id", event.OrderID,
		"order_number", event.OrderNumber,
		"title", event.Title,
		"requester_id", event.RequesterID,
	)
	return nil
}
