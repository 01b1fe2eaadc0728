package commands

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	ErrDeleteOrderCommandIsNotConstructed = errors.New(
		"DeleteOrderCommand must be created via NewDeleteOrderCommand constructor",
	)
)

// DeleteOrderCommand is the administrative hard delete of an order. It is not
// a lifecycle transition; archiving is.
type DeleteOrderCommand struct { //nolint:recvcheck //using for validation
	principal access.Principal
	orderID   int64

	guard guard.ConstructorGuard
}

func NewDeleteOrderCommand(principal access.Principal, orderID int64) (DeleteOrderCommand, error) {
	if err := principal.Validate(); err != nil {
		return DeleteOrderCommand{}, err
	}
	if orderID <= 0 {
		return DeleteOrderCommand{}, errs.NewValueIsRequiredError("order id")
	}
	return DeleteOrderCommand{
		principal: principal,
		orderID:   orderID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeleteOrderCommandIsNotConstructed)
}

func (c DeleteOrderCommand) Principal() access.Principal { return c.principal }
func (c DeleteOrderCommand) OrderID() int64              { return c.orderID }
