package order

import (
	"time"

	"procurement/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// CreatedEventType names the OrderCreated event on the wire and in the outbox.
const CreatedEventType = "order.created"

// CreatedEvent is emitted once an order creation has committed. Consumers
// (the e-mail notifier) must tolerate duplicates: delivery is at least once.
type CreatedEvent struct {
	EventID         kernel.UUID
	OrderID         int64
	OrderNumber     string
	Title           string
	RequesterID     int64
	OrderTypeID     *int64
	DepartmentID    *int64
	Priority        Priority
	EstimatedAmount *decimal.Decimal
	Currency        kernel.Currency
	ItemCount       int
	OccurredAt      time.Time
}

// NewCreatedEvent snapshots a persisted order into its creation event.
func NewCreatedEvent(o *Order) CreatedEvent {
	d := o.Details()
	return CreatedEvent{
		EventID:         kernel.NewUUID(),
		OrderID:         o.ID(),
		OrderNumber:     o.Number().String(),
		Title:           d.Title,
		RequesterID:     o.RequesterID(),
		OrderTypeID:     d.OrderTypeID,
		DepartmentID:    d.DepartmentID,
		Priority:        d.Priority,
		EstimatedAmount: d.EstimatedAmount,
		Currency:        d.Currency,
		ItemCount:       len(o.Items()),
		OccurredAt:      o.CreatedAt(),
	}
}
