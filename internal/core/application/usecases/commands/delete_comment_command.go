package commands

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/guard"
)

var (
	ErrDeleteCommentCommandIsNotConstructed = errors.New(
		"DeleteCommentCommand must be created via NewDeleteCommentCommand constructor",
	)
)

type DeleteCommentCommand struct { //nolint:recvcheck //using for validation
	principal access.Principal
	orderID   int64
	commentID int64

	guard guard.ConstructorGuard
}

func NewDeleteCommentCommand(principal access.Principal, orderID, commentID int64) (DeleteCommentCommand, error) {
	if err := principal.Validate(); err != nil {
		return DeleteCommentCommand{}, err
	}
	if err := requireIDs(orderID, "comment id", commentID); err != nil {
		return DeleteCommentCommand{}, err
	}
	return DeleteCommentCommand{
		principal: principal,
		orderID:   orderID,
		commentID: commentID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteCommentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCommentCommandIsNotConstructed)
}

func (c DeleteCommentCommand) Principal() access.Principal { return c.principal }
func (c DeleteCommentCommand) OrderID() int64              { return c.orderID }
func (c DeleteCommentCommand) CommentID() int64            { return c.commentID }
