package commands

import (
	"errors"
	"strings"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	ErrAddCommentCommandIsNotConstructed = errors.New(
		"AddCommentCommand must be created via NewAddCommentCommand constructor",
	)
)

type AddCommentCommand struct { //nolint:recvcheck //using for validation
	principal  access.Principal
	orderID    int64
	text       string
	isInternal bool

	guard guard.ConstructorGuard
}

func NewAddCommentCommand(principal access.Principal, orderID int64, text string, isInternal bool) (AddCommentCommand, error) {
	if err := principal.Validate(); err != nil {
		return AddCommentCommand{}, err
	}
	if orderID <= 0 {
		return AddCommentCommand{}, errs.NewValueIsRequiredError("order id")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return AddCommentCommand{}, errs.NewValueIsRequiredError("comment text")
	}

	return AddCommentCommand{
		principal:  principal,
		orderID:    orderID,
		text:       text,
		isInternal: isInternal,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AddCommentCommand) Validate() error {
	return c.guard.Validate(ErrAddCommentCommandIsNotConstructed)
}

func (c AddCommentCommand) Principal() access.Principal { return c.principal }
func (c AddCommentCommand) OrderID() int64              { return c.orderID }
func (c AddCommentCommand) Text() string                { return c.text }
func (c AddCommentCommand) IsInternal() bool            { return c.isInternal }
