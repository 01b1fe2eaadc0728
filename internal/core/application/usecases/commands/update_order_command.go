package commands

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	ErrUpdateOrderCommandIsNotConstructed = errors.New(
		"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
	)
)

// UpdateOrderCommand carries a partial update of an order's descriptive,
// financial and date fields. Status and number cannot be expressed in it.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	principal access.Principal
	orderID   int64
	patch     order.Patch

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(principal access.Principal, orderID int64, patch order.Patch) (UpdateOrderCommand, error) {
	if err := principal.Validate(); err != nil {
		return UpdateOrderCommand{}, err
	}
	if orderID <= 0 {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("order id")
	}
	if patch.OrderTypeID != nil && *patch.OrderTypeID <= 0 {
		return UpdateOrderCommand{}, errs.NewValueIsInvalidError("order type")
	}
	if patch.DepartmentID != nil && *patch.DepartmentID <= 0 {
		return UpdateOrderCommand{}, errs.NewValueIsInvalidError("department")
	}

	return UpdateOrderCommand{
		principal: principal,
		orderID:   orderID,
		patch:     patch,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) Principal() access.Principal { return c.principal }
func (c UpdateOrderCommand) OrderID() int64              { return c.orderID }
func (c UpdateOrderCommand) Patch() order.Patch          { return c.patch }
