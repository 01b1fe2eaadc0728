package commands

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/guard"
)

var (
	ErrUpdateDocumentCommandIsNotConstructed = errors.New(
		"UpdateDocumentCommand must be created via NewUpdateDocumentCommand constructor",
	)
)

// UpdateDocumentCommand changes a document's description. A nil description
// clears it.
type UpdateDocumentCommand struct { //nolint:recvcheck //using for validation
	principal   access.Principal
	orderID     int64
	documentID  int64
	description *string

	guard guard.ConstructorGuard
}

func NewUpdateDocumentCommand(
	principal access.Principal,
	orderID, documentID int64,
	description *string,
) (UpdateDocumentCommand, error) {
	if err := principal.Validate(); err != nil {
		return UpdateDocumentCommand{}, err
	}
	if err := requireIDs(orderID, "document id", documentID); err != nil {
		return UpdateDocumentCommand{}, err
	}
	return UpdateDocumentCommand{
		principal:   principal,
		orderID:     orderID,
		documentID:  documentID,
		description: description,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateDocumentCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDocumentCommandIsNotConstructed)
}

func (c UpdateDocumentCommand) Principal() access.Principal { return c.principal }
func (c UpdateDocumentCommand) OrderID() int64              { return c.orderID }
func (c UpdateDocumentCommand) DocumentID() int64           { return c.documentID }
func (c UpdateDocumentCommand) Description() *string        { return c.description }
