package commands

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/guard"
)

var (
	ErrDeleteDocumentCommandIsNotConstructed = errors.New(
		"DeleteDocumentCommand must be created via NewDeleteDocumentCommand constructor",
	)
)

type DeleteDocumentCommand struct { //nolint:recvcheck //using for validation
	principal  access.Principal
	orderID    int64
	documentID int64

	guard guard.ConstructorGuard
}

func NewDeleteDocumentCommand(principal access.Principal, orderID, documentID int64) (DeleteDocumentCommand, error) {
	if err := principal.Validate(); err != nil {
		return DeleteDocumentCommand{}, err
	}
	if err := requireIDs(orderID, "document id", documentID); err != nil {
		return DeleteDocumentCommand{}, err
	}
	return DeleteDocumentCommand{
		principal:  principal,
		orderID:    orderID,
		documentID: documentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteDocumentCommand) Validate() error {
	return c.guard.Validate(ErrDeleteDocumentCommandIsNotConstructed)
}

func (c DeleteDocumentCommand) Principal() access.Principal { return c.principal }
func (c DeleteDocumentCommand) OrderID() int64              { return c.orderID }
func (c DeleteDocumentCommand) DocumentID() int64           { return c.documentID }
