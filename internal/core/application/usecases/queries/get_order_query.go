package queries

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	ErrGetOrderQueryIsNotConstructed = errors.New(
		"GetOrderQuery must be created via NewGetOrderQuery constructor",
	)
)

// GetOrderQuery reads one order with its items, documents, comments and
// history.
//
// Example:
//
//	query, err := NewGetOrderQuery(principal, 42)
//	if err != nil {
//	    return err
//	}
//	detail, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	principal access.Principal
	orderID   int64

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(principal access.Principal, orderID int64) (GetOrderQuery, error) {
	if err := validateOrderRef(principal, orderID); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{principal: principal, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Principal() access.Principal { return q.principal }
func (q GetOrderQuery) OrderID() int64              { return q.orderID }

func validateOrderRef(principal access.Principal, orderID int64) error {
	if err := principal.Validate(); err != nil {
		return err
	}
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	return nil
}
