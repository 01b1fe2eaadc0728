package queries

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/guard"
)

var (
	ErrListOrderDocumentsQueryIsNotConstructed = errors.New(
		"ListOrderDocumentsQuery must be created via NewListOrderDocumentsQuery constructor",
	)
)

// ListOrderDocumentsQuery reads the documents attached to an order, newest first.
type ListOrderDocumentsQuery struct {
	principal access.Principal
	orderID   int64

	guard guard.ConstructorGuard
}

func NewListOrderDocumentsQuery(principal access.Principal, orderID int64) (ListOrderDocumentsQuery, error) {
	if err := validateOrderRef(principal, orderID); err != nil {
		return ListOrderDocumentsQuery{}, err
	}
	return ListOrderDocumentsQuery{principal: principal, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrderDocumentsQuery) Validate() error {
	return q.guard.Validate(ErrListOrderDocumentsQueryIsNotConstructed)
}

func (q ListOrderDocumentsQuery) Principal() access.Principal { return q.principal }
func (q ListOrderDocumentsQuery) OrderID() int64              { return q.orderID }
