package queries

import (
	"errors"
	"strings"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

const (
	DefaultListLimit = 50
	MaxListLimit     = 200
)

var (
	ErrListOrdersQueryIsNotConstructed = errors.New(
		"ListOrdersQuery must be created via NewListOrdersQuery constructor",
	)
)

// ListOrdersFilter narrows the order list. Zero values mean "no filter";
// a zero Limit means DefaultListLimit.
type ListOrdersFilter struct {
	StatusCode  string
	RequesterID *int64
	Limit       int
	Offset      int
}

// ListOrdersQuery lists orders visible to the principal, newest first.
//
// Example:
//
//	query, err := NewListOrdersQuery(principal, ListOrdersFilter{StatusCode: "review"})
//	if err != nil {
//	    return err
//	}
//	orders, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	principal   access.Principal
	status      *order.Status
	requesterID *int64
	limit       int
	offset      int

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(principal access.Principal, filter ListOrdersFilter) (ListOrdersQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}

	q := ListOrdersQuery{
		principal:   principal,
		requesterID: filter.RequesterID,
		limit:       filter.Limit,
		offset:      filter.Offset,
		guard:       guard.NewConstructorGuard(),
	}

	if code := strings.TrimSpace(filter.StatusCode); code != "" {
		status, err := order.ParseStatus(code)
		if err != nil {
			return ListOrdersQuery{}, err
		}
		q.status = &status
	}
	if q.requesterID != nil && *q.requesterID <= 0 {
		return ListOrdersQuery{}, errs.NewValueIsInvalidError("requester id")
	}
	if q.limit == 0 {
		q.limit = DefaultListLimit
	}
	if q.limit < 0 || q.limit > MaxListLimit {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", q.limit, 1, MaxListLimit)
	}
	if q.offset < 0 {
		return ListOrdersQuery{}, errs.NewValueIsOutOfRangeError("offset", q.offset, 0, "unbounded")
	}
	return q, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Principal() access.Principal { return q.principal }
func (q ListOrdersQuery) Status() *order.Status       { return q.status }
func (q ListOrdersQuery) RequesterID() *int64         { return q.requesterID }
func (q ListOrdersQuery) Limit() int                  { return q.limit }
func (q ListOrdersQuery) Offset() int                 { return q.offset }
