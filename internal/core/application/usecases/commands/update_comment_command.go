package commands

import (
	"errors"
	"strings"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	ErrUpdateCommentCommandIsNotConstructed = errors.New(
		"UpdateCommentCommand must be created via NewUpdateCommentCommand constructor",
	)
)

// UpdateCommentCommand replaces a comment's text and, when isInternal is not
// nil, its visibility flag.
type UpdateCommentCommand struct { //nolint:recvcheck //using for validation
	principal  access.Principal
	orderID    int64
	commentID  int64
	text       string
	isInternal *bool

	guard guard.ConstructorGuard
}

func NewUpdateCommentCommand(
	principal access.Principal,
	orderID, commentID int64,
	text string,
	isInternal *bool,
) (UpdateCommentCommand, error) {
	if err := principal.Validate(); err != nil {
		return UpdateCommentCommand{}, err
	}
	if err := requireIDs(orderID, "comment id", commentID); err != nil {
		return UpdateCommentCommand{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return UpdateCommentCommand{}, errs.NewValueIsRequiredError("comment text")
	}

	return UpdateCommentCommand{
		principal:  principal,
		orderID:    orderID,
		commentID:  commentID,
		text:       text,
		isInternal: isInternal,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateCommentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCommentCommandIsNotConstructed)
}

func (c UpdateCommentCommand) Principal() access.Principal { return c.principal }
func (c UpdateCommentCommand) OrderID() int64              { return c.orderID }
func (c UpdateCommentCommand) CommentID() int64            { return c.commentID }
func (c UpdateCommentCommand) Text() string                { return c.text }
func (c UpdateCommentCommand) IsInternal() *bool           { return c.isInternal }

// requireIDs checks an order id and the id of one of its children.
func requireIDs(orderID int64, childName string, childID int64) error {
	if orderID <= 0 {
		return errs.NewValueIsRequiredError("order id")
	}
	if childID <= 0 {
		return errs.NewValueIsRequiredError(childName)
	}
	return nil
}
