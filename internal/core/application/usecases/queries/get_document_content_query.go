package queries

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var (
	ErrGetDocumentContentQueryIsNotConstructed = errors.New(
		"GetDocumentContentQuery must be created via NewGetDocumentContentQuery constructor",
	)
)

// GetDocumentContentQuery opens the file of one document for download.
type GetDocumentContentQuery struct {
	principal  access.Principal
	orderID    int64
	documentID int64

	guard guard.ConstructorGuard
}

func NewGetDocumentContentQuery(principal access.Principal, orderID, documentID int64) (GetDocumentContentQuery, error) {
	if err := validateOrderRef(principal, orderID); err != nil {
		return GetDocumentContentQuery{}, err
	}
	if documentID <= 0 {
		return GetDocumentContentQuery{}, errs.NewValueIsRequiredError("document id")
	}
	return GetDocumentContentQuery{
		principal:  principal,
		orderID:    orderID,
		documentID: documentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDocumentContentQuery) Validate() error {
	return q.guard.Validate(ErrGetDocumentContentQueryIsNotConstructed)
}

func (q GetDocumentContentQuery) Principal() access.Principal { return q.principal }
func (q GetDocumentContentQuery) OrderID() int64              { return q.orderID }
func (q GetDocumentContentQuery) DocumentID() int64           { return q.documentID }
