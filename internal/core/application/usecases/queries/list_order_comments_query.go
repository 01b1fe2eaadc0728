package queries

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/guard"
)

var (
	ErrListOrderCommentsQueryIsNotConstructed = errors.New(
		"ListOrderCommentsQuery must be created via NewListOrderCommentsQuery constructor",
	)
)

// ListOrderCommentsQuery reads the comments of an order in posting order.
type ListOrderCommentsQuery struct {
	principal access.Principal
	orderID   int64

	guard guard.ConstructorGuard
}

func NewListOrderCommentsQuery(principal access.Principal, orderID int64) (ListOrderCommentsQuery, error) {
	if err := validateOrderRef(principal, orderID); err != nil {
		return ListOrderCommentsQuery{}, err
	}
	return ListOrderCommentsQuery{principal: principal, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrderCommentsQuery) Validate() error {
	return q.guard.Validate(ErrListOrderCommentsQueryIsNotConstructed)
}

func (q ListOrderCommentsQuery) Principal() access.Principal { return q.principal }
func (q ListOrderCommentsQuery) OrderID() int64              { return q.orderID }
