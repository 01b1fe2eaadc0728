// Package ports defines the contracts between the workflow engine and its
// collaborators: the relational store (repositories and unit of work), the file
// store, the event publisher, the notifier and the permission resolver.
package ports

import (
	"context"

	"procurement/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates and
// their line items.
type OrderRepository interface {
	// Add persists a new order with its items and assigns their identities.
	// A duplicate order number is reported as a ConflictError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists descriptive fields and status. The write only succeeds
	// when the stored version equals aggregate.Version(); a mismatch is a
	// ConflictError and the caller may retry the whole operation.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with its items.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends, so
	// concurrent status changes on the same order serialize.
	GetForUpdate(ctx context.Context, id int64) (*order.Order, error)

	// Delete hard-deletes an order; items, documents, comments and history go
	// with it. Administrative cleanup only.
	Delete(ctx context.Context, id int64) error

	// NextNumberSequence returns the next monthly sequence for numbers starting
	// with prefix. The read is serialized per prefix until the transaction ends.
	NextNumberSequence(ctx context.Context, prefix string) (int, error)
}
