package order

import (
	"time"

	"procurement/internal/pkg/errs"
)

// CreationComment is the history comment of the entry written at creation.
const CreationComment = "order created"

// WorkflowEntry is one immutable line of an order's status history. The entry
// written at creation has no From status.
type WorkflowEntry struct {
	id        int64
	orderID   int64
	from      *Status
	to        Status
	changedBy int64
	changedAt time.Time
	comments  *string
	metadata  []byte
}

// NewCreationEntry is the first history entry of every order: nil -> pending.
func NewCreationEntry(o *Order, changedBy int64) (WorkflowEntry, error) {
	comment := CreationComment
	return newWorkflowEntry(o.ID(), nil, o.Status(), changedBy, o.CreatedAt(), &comment)
}

// NewTransitionEntry records from -> to on orderID.
func NewTransitionEntry(
	orderID int64,
	from, to Status,
	changedBy int64,
	changedAt time.Time,
	comments *string,
) (WorkflowEntry, error) {
	return newWorkflowEntry(orderID, &from, to, changedBy, changedAt, comments)
}

// RestoreWorkflowEntry rebuilds a persisted history entry.
func RestoreWorkflowEntry(
	id, orderID int64,
	from *Status,
	to Status,
	changedBy int64,
	changedAt time.Time,
	comments *string,
	metadata []byte,
) WorkflowEntry {
	return WorkflowEntry{
		id:        id,
		orderID:   orderID,
		from:      from,
		to:        to,
		changedBy: changedBy,
		changedAt: changedAt,
		comments:  comments,
		metadata:  metadata,
	}
}

func newWorkflowEntry(
	orderID int64,
	from *Status,
	to Status,
	changedBy int64,
	changedAt time.Time,
	comments *string,
) (WorkflowEntry, error) {
	if orderID <= 0 {
		return WorkflowEntry{}, errs.NewValueIsRequiredError("order")
	}
	if changedBy <= 0 {
		return WorkflowEntry{}, errs.NewValueIsRequiredError("changed by")
	}
	if err := to.Validate(); err != nil {
		return WorkflowEntry{}, err
	}
	if from != nil {
		if err := from.Validate(); err != nil {
			return WorkflowEntry{}, err
		}
	}

	return WorkflowEntry{
		orderID:   orderID,
		from:      from,
		to:        to,
		changedBy: changedBy,
		changedAt: changedAt.UTC(),
		comments:  comments,
	}, nil
}

func (e WorkflowEntry) ID() int64            { return e.id }
func (e WorkflowEntry) OrderID() int64       { return e.orderID }
func (e WorkflowEntry) From() *Status        { return e.from }
func (e WorkflowEntry) To() Status           { return e.to }
func (e WorkflowEntry) ChangedBy() int64     { return e.changedBy }
func (e WorkflowEntry) ChangedAt() time.Time { return e.changedAt }
func (e WorkflowEntry) Comments() *string    { return e.comments }
func (e WorkflowEntry) Metadata() []byte     { return e.metadata }

// WithID returns a copy carrying the identity assigned by the store.
func (e WorkflowEntry) WithID(id int64) WorkflowEntry {
	e.id = id
	return e
}
