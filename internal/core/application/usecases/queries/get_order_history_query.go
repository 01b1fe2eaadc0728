package queries

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/guard"
)

var (
	ErrGetOrderHistoryQueryIsNotConstructed = errors.New(
		"GetOrderHistoryQuery must be created via NewGetOrderHistoryQuery constructor",
	)
)

// GetOrderHistoryQuery reads the status history of an order, oldest first.
type GetOrderHistoryQuery struct {
	principal access.Principal
	orderID   int64

	guard guard.ConstructorGuard
}

func NewGetOrderHistoryQuery(principal access.Principal, orderID int64) (GetOrderHistoryQuery, error) {
	if err := validateOrderRef(principal, orderID); err != nil {
		return GetOrderHistoryQuery{}, err
	}
	return GetOrderHistoryQuery{principal: principal, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderHistoryQueryIsNotConstructed)
}

func (q GetOrderHistoryQuery) Principal() access.Principal { return q.principal }
func (q GetOrderHistoryQuery) OrderID() int64              { return q.orderID }
