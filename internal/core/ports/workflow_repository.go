package ports

import (
	"context"

	"procurement/internal/core/domain/model/order"
)

// WorkflowRepository is the append-only store of status history. There is
// deliberately no way to update or delete an entry.
type WorkflowRepository interface {
	// Record appends entry and returns it with its identity.
	Record(ctx context.Context, entry order.WorkflowEntry) (order.WorkflowEntry, error)

	// ListByOrder returns the history of orderID, oldest first.
	ListByOrder(ctx context.Context, orderID int64) ([]order.WorkflowEntry, error)
}
