// Package events is the wire format of order events, shared by the outbox
// table and the Kafka topic so a stored payload can be published as is.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// OrderCreatedMessage is the JSON body of an order.created event.
type OrderCreatedMessage struct {
	EventID         string           `json:"event_id"`
	EventType       string           `json:"event_type"`
	OrderID         int64            `json:"order_id"`
	OrderNumber     string           `json:"order_number"`
	Title           string           `json:"title"`
	RequesterID     int64            `json:"requester_id"`
	OrderTypeID     *int64           `json:"order_type_id,omitempty"`
	DepartmentID    *int64           `json:"department_id,omitempty"`
	Priority        string           `json:"priority"`
	EstimatedAmount *decimal.Decimal `json:"estimated_amount,omitempty"`
	Currency        string           `json:"currency"`
	ItemCount       int              `json:"item_count"`
	OccurredAt      time.Time        `json:"occurred_at"`
}

// EncodeOrderCreated serializes event.
func EncodeOrderCreated(event order.CreatedEvent) ([]byte, error) {
	msg := OrderCreatedMessage{
		EventID:         event.EventID.String(),
		EventType:       order.CreatedEventType,
		OrderID:         event.OrderID,
		OrderNumber:     event.OrderNumber,
		Title:           event.Title,
		RequesterID:     event.RequesterID,
		OrderTypeID:     event.OrderTypeID,
		DepartmentID:    event.DepartmentID,
		Priority:        string(event.Priority),
		EstimatedAmount: event.EstimatedAmount,
		Currency:        string(event.Currency),
		ItemCount:       event.ItemCount,
		OccurredAt:      event.OccurredAt.UTC(),
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode %s event: %w", order.CreatedEventType, err)
	}
	return data, nil
}

// DecodeOrderCreated parses a payload produced by EncodeOrderCreated.
func DecodeOrderCreated(data []byte) (order.CreatedEvent, error) {
	var msg OrderCreatedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return order.CreatedEvent{}, errs.NewValueIsInvalidErrorWithCause("event payload", err)
	}
	if msg.EventType != order.CreatedEventType {
		return order.CreatedEvent{}, errs.NewValueIsInvalidError("event type " + msg.EventType)
	}

	id, err := kernel.UUIDFromString(msg.EventID)
	if err != nil {
		return order.CreatedEvent{}, err
	}

	return order.CreatedEvent{
		EventID:         id,
		OrderID:         msg.OrderID,
		OrderNumber:     msg.OrderNumber,
		Title:           msg.Title,
		RequesterID:     msg.RequesterID,
		OrderTypeID:     msg.OrderTypeID,
		DepartmentID:    msg.DepartmentID,
		Priority:        order.Priority(msg.Priority),
		EstimatedAmount: msg.EstimatedAmount,
		Currency:        kernel.Currency(msg.Currency),
		ItemCount:       msg.ItemCount,
		OccurredAt:      msg.OccurredAt,
	}, nil
}
