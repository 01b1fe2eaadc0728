package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/ports"
	"procurement/internal/pkg/clock"
)

// RelayOutboxResult counts what one pass did.
type RelayOutboxResult struct {
	Published int
	Failed    int
}

// RelayOutboxCommandHandler publishes events that were committed but not yet
// published, oldest first. Rows are locked with SKIP LOCKED for the duration
// of the pass, so concurrent relays never publish the same event twice.
// A failed publication increments the attempt counter and is retried on the
// next pass.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      clock.Clock
	logger     *slog.Logger
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clk clock.Clock,
	logger *slog.Logger,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clk,
		logger:     logger.With("component", "relay_outbox_handler"),
	}
}

func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (RelayOutboxResult, error) {
	if err := cmd.Validate(); err != nil {
		return RelayOutboxResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RelayOutboxResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	outbox := uow.OutboxRepository()
	pending, err := outbox.ListPending(ctx, cmd.BatchSize())
	if err != nil {
		return RelayOutboxResult{}, err
	}
	if len(pending) == 0 {
		return RelayOutboxResult{}, nil
	}

	var result RelayOutboxResult
	for _, message := range pending {
		if err = ctx.Err(); err != nil {
			break
		}

		if pubErr := h.publisher.PublishOrderCreated(ctx, message.Event); pubErr != nil {
			h.logger.WarnContext(ctx, "Outbox event not published",
				"event_id", message.ID.String(), "order_id", message.Event.OrderID,
				"attempts", message.Attempts+1, "error", pubErr)

			if err = outbox.MarkFailed(ctx, message.ID, pubErr.Error()); err != nil {
				return RelayOutboxResult{}, err
			}
			result.Failed++
			continue
		}

		if err = outbox.MarkPublished(ctx, message.ID, h.clock.Now()); err != nil {
			return RelayOutboxResult{}, err
		}
		result.Published++
	}

	if err = uow.Commit(ctx); err != nil {
		return RelayOutboxResult{}, err
	}

	h.logger.InfoContext(ctx, "Outbox relayed", "published", result.Published, "failed", result.Failed)
	return result, nil
}
