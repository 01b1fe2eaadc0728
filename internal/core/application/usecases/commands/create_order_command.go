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
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a request to open a new order on behalf of the
// calling principal, who becomes its requester.
//
// Example:
//
//	typeID := int64(2)
//	cmd, err := NewCreateOrderCommand(principal, order.Details{
//	    OrderTypeID: &typeID,
//	    Title:       "Laptop purchase",
//	}, []order.ItemDetails{{Name: "Laptop", Quantity: 3}})
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	result, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	principal access.Principal
	details   order.Details
	items     []order.ItemDetails

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the shape of the request. Title and order
// type are required; whether the order type and department exist is checked
// by the handler against the store.
func NewCreateOrderCommand(
	principal access.Principal,
	details order.Details,
	items []order.ItemDetails,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPrincipal(principal),
		cmd.setDetails(details),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.items = items

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Principal() access.Principal {
	return c.principal
}

func (c CreateOrderCommand) Details() order.Details {
	return c.details
}

func (c CreateOrderCommand) Items() []order.ItemDetails {
	return c.items
}

func (c *CreateOrderCommand) setPrincipal(principal access.Principal) error {
	if err := principal.Validate(); err != nil {
		return err
	}
	c.principal = principal
	return nil
}

func (c *CreateOrderCommand) setDetails(details order.Details) error {
	if strings.TrimSpace(details.Title) == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if details.OrderTypeID == nil || *details.OrderTypeID <= 0 {
		return errs.NewValueIsRequiredError("order type")
	}
	c.details = details
	return nil
}
