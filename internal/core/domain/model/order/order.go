package order

import (
	"errors"
	"strings"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const maxTitleLength = 255

var (
	// ErrOrderIsNotConstructed is returned for Order values that did not come
	// from NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Details are the descriptive, financial and date fields of an order that
// the requester chooses. Status, number and audit fields are not part of it.
type Details struct {
	OrderTypeID     *int64
	DepartmentID    *int64
	Title           string
	Description     *string
	Priority        Priority
	EstimatedAmount *decimal.Decimal
	Currency        kernel.Currency
	RequestedDate   time.Time
	RequiredByDate  *time.Time
	Metadata        []byte
}

// Patch is a partial update of Details. Nil fields are left untouched.
// Status and number are deliberately absent: they only change through
// ChangeStatus and never, respectively.
type Patch struct {
	OrderTypeID     *int64
	DepartmentID    *int64
	Title           *string
	Description     *string
	Priority        *Priority
	EstimatedAmount *decimal.Decimal
	Currency        *kernel.Currency
	RequestedDate   *time.Time
	RequiredByDate  *time.Time
}

// Snapshot is the full persisted state of an order, used by repositories to
// restore the aggregate.
type Snapshot struct {
	ID            int64
	Number        string
	Status        Status
	RequesterID   int64
	Details       Details
	ApprovedDate  *time.Time
	CompletedDate *time.Time
	CreatedBy     *int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Version       int64
	Items         []*Item
}

// Order is the aggregate root of a procurement request.
//
// Invariants:
//   - the number is assigned at construction and never changes
//   - the status only changes through ChangeStatus, along the transition table
//   - entering Approved stamps approvedDate, entering Completed stamps completedDate
//   - the title is never empty
type Order struct {
	id            int64
	number        Number
	status        Status
	requesterID   int64
	details       Details
	approvedDate  *time.Time
	completedDate *time.Time
	createdBy     *int64
	createdAt     time.Time
	updatedAt     time.Time
	version       int64
	items         []*Item

	isConstructed bool
}

// NewOrder creates a Pending order for requesterID, who is also recorded as
// its creator.
//
// Example:
//
//	number, _ := order.NewNumber(now, 1)
//	o, err := order.NewOrder(number, 7, order.Details{Title: "Laptop purchase"}, items, now)
func NewOrder(number Number, requesterID int64, details Details, items []*Item, now time.Time) (*Order, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}
	if requesterID <= 0 {
		return nil, errs.NewValueIsRequiredError("requester")
	}

	now = now.UTC()
	if details.RequestedDate.IsZero() {
		details.RequestedDate = truncateToDay(now)
	}
	if details.Currency == "" {
		details.Currency = kernel.DefaultCurrency
	}
	if details.Priority == "" {
		details.Priority = PriorityMedium
	}
	details.Title = strings.TrimSpace(details.Title)

	if err := validateDetails(details); err != nil {
		return nil, err
	}

	creator := requesterID
	return &Order{
		number:        number,
		status:        Pending,
		requesterID:   requesterID,
		details:       details,
		createdBy:     &creator,
		createdAt:     now,
		updatedAt:     now,
		items:         items,
		isConstructed: true,
	}, nil
}

// RestoreOrder rebuilds an order from its persisted state.
func RestoreOrder(s Snapshot) (*Order, error) {
	number, err := ParseNumber(s.Number)
	if err != nil {
		return nil, err
	}
	if err = s.Status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:            s.ID,
		number:        number,
		status:        s.Status,
		requesterID:   s.RequesterID,
		details:       s.Details,
		approvedDate:  s.ApprovedDate,
		completedDate: s.CompletedDate,
		createdBy:     s.CreatedBy,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		items:         s.Items,
		isConstructed: true,
	}, nil
}

// Validate ensures the order came from one of the constructors.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() int64                 { return o.id }
func (o *Order) Number() Number            { return o.number }
func (o *Order) Status() Status            { return o.status }
func (o *Order) RequesterID() int64        { return o.requesterID }
func (o *Order) Details() Details          { return o.details }
func (o *Order) Title() string             { return o.details.Title }
func (o *Order) ApprovedDate() *time.Time  { return o.approvedDate }
func (o *Order) CompletedDate() *time.Time { return o.completedDate }
func (o *Order) CreatedBy() *int64         { return o.createdBy }
func (o *Order) CreatedAt() time.Time      { return o.createdAt }
func (o *Order) UpdatedAt() time.Time      { return o.updatedAt }
func (o *Order) Version() int64            { return o.version }
func (o *Order) Items() []*Item            { return o.items }

// IsRequestedBy reports whether userID is the order's requester.
func (o *Order) IsRequestedBy(userID int64) bool {
	return o.requesterID == userID
}

// IsVisibleTo reports whether userID may see the order without orders.view.all:
// the requester and the creator can.
func (o *Order) IsVisibleTo(userID int64) bool {
	return o.requesterID == userID || (o.createdBy != nil && *o.createdBy == userID)
}

// Persisted records the identity and version assigned by the store.
func (o *Order) Persisted(id, version int64) {
	o.id = id
	o.version = version
}

// Apply updates descriptive, financial and date fields from p.
// It never touches status or number.
func (o *Order) Apply(p Patch, now time.Time) error {
	next := o.details
	if p.OrderTypeID != nil {
		next.OrderTypeID = p.OrderTypeID
	}
	if p.DepartmentID != nil {
		next.DepartmentID = p.DepartmentID
	}
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		next.Description = p.Description
	}
	if p.Priority != nil {
		next.Priority = *p.Priority
	}
	if p.EstimatedAmount != nil {
		next.EstimatedAmount = p.EstimatedAmount
	}
	if p.Currency != nil {
		next.Currency = *p.Currency
	}
	if p.RequestedDate != nil {
		next.RequestedDate = p.RequestedDate.UTC()
	}
	if p.RequiredByDate != nil {
		next.RequiredByDate = p.RequiredByDate
	}

	if err := validateDetails(next); err != nil {
		return err
	}

	o.details = next
	o.updatedAt = now.UTC()
	return nil
}

// ChangeStatus moves the order to `to` when the transition table allows it and
// returns the status it left. Entering Approved or Completed stamps the
// matching date.
func (o *Order) ChangeStatus(to Status, now time.Time) (Status, error) {
	from := o.status
	next, err := from.TransitionTo(to)
	if err != nil {
		return from, err
	}

	now = now.UTC()
	switch next {
	case Approved:
		o.approvedDate = &now
	case Completed:
		o.completedDate = &now
	case Unknown, Pending, Review, Cancelled, Rejected, Archived:
	}

	o.status = next
	o.updatedAt = now
	return from, nil
}

func validateDetails(d Details) error {
	if d.Title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if len(d.Title) > maxTitleLength {
		return errs.NewValueIsOutOfRangeError("title length", len(d.Title), 1, maxTitleLength)
	}
	if _, err := ParsePriority(string(d.Priority)); err != nil {
		return err
	}
	if _, err := kernel.NewCurrency(string(d.Currency)); err != nil {
		return err
	}
	if err := kernel.ValidateAmount("estimated amount", d.EstimatedAmount); err != nil {
		return err
	}
	if d.RequiredByDate != nil && !d.RequestedDate.IsZero() && d.RequiredByDate.Before(truncateToDay(d.RequestedDate)) {
		return errs.NewValueIsInvalidError("required by date is before requested date")
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
