package commands

import (
	"errors"
	"strings"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	ErrChangeOrderStatusCommandIsNotConstructed = errors.New(
		"ChangeOrderStatusCommand must be created via NewChangeOrderStatusCommand constructor",
	)
)

// ChangeOrderStatusCommand moves an order to the status named by a code.
// The code is parsed here: an unknown code never reaches the store.
type ChangeOrderStatusCommand struct { //nolint:recvcheck //using for validation
	principal access.Principal
	orderID   int64
	target    order.Status
	comments  *string

	guard guard.ConstructorGuard
}

func NewChangeOrderStatusCommand(
	principal access.Principal,
	orderID int64,
	statusCode string,
	comments *string,
) (ChangeOrderStatusCommand, error) {
	cmd := ChangeOrderStatusCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		principal.Validate(),
		cmd.setOrderID(orderID),
		cmd.setTarget(statusCode),
	); err != nil {
		return ChangeOrderStatusCommand{}, err
	}
	cmd.principal = principal

	if comments != nil {
		trimmed := strings.TrimSpace(*comments)
		if trimmed != "" {
			cmd.comments = &trimmed
		}
	}

	return cmd, nil
}

func (c ChangeOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeOrderStatusCommandIsNotConstructed)
}

func (c ChangeOrderStatusCommand) Principal() access.Principal { return c.principal }
func (c ChangeOrderStatusCommand) OrderID() int64              { return c.orderID }
func (c ChangeOrderStatusCommand) Target() order.Status        { return c.target }
func (c ChangeOrderStatusCommand) Comments() *string           { return c.comments }

func (c *ChangeOrderStatusCommand) setOrderID(orderID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	c.orderID = orderID
	return nil
}

func (c *ChangeOrderStatusCommand) setTarget(code string) error {
	target, err := order.ParseStatus(code)
	if err != nil {
		return err
	}
	c.target = target
	return nil
}
