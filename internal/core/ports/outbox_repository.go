package ports

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
)

// OutboxMessage is a stored, not yet published OrderCreated event.
type OutboxMessage struct {
	ID       kernel.UUID
	Event    order.CreatedEvent
	Attempts int
}

// OutboxRepository stores events in the same transaction as the state change
// that produced them, so an event exists if and only if the change committed.
type OutboxRepository interface {
	Add(ctx context.Context, event order.CreatedEvent) error

	// ListPending returns up to limit unpublished messages, oldest first,
	// skipping rows locked by a concurrent relay.
	ListPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error

	// MarkFailed increments the attempt counter and records the last error.
	MarkFailed(ctx context.Context, id kernel.UUID, reason string) error
}
