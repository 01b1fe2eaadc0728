package services

import (
	"fmt"
	"strconv"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
)

// OwnershipGuard authorizes mutations of comments and documents. The owner
// (author or uploader) may always act; others need an elevated permission:
//   - comment edit and delete: orders.edit.all
//   - document metadata edit: orders.edit.all
//   - document delete: orders.delete
//
// A denied document delete is reported as NotFound (with the denial as cause)
// so that a non-owner cannot learn which documents exist.
type OwnershipGuard struct{}

func NewOwnershipGuard() OwnershipGuard {
	return OwnershipGuard{}
}

func (OwnershipGuard) CanModifyComment(p access.Principal, c *order.Comment) error {
	if c.IsAuthoredBy(p.UserID()) || p.Has(access.OrdersEditAll) {
		return nil
	}
	return errs.NewPermissionDeniedError(fmt.Sprintf("modify comment %d", c.ID()))
}

func (OwnershipGuard) CanEditDocument(p access.Principal, d *order.Document) error {
	if d.IsUploadedBy(p.UserID()) || p.Has(access.OrdersEditAll) {
		return nil
	}
	return errs.NewPermissionDeniedError(fmt.Sprintf("edit document %d", d.ID()))
}

func (OwnershipGuard) CanDeleteDocument(p access.Principal, d *order.Document) error {
	if d.IsUploadedBy(p.UserID()) || p.Has(access.OrdersDelete) {
		return nil
	}
	return errs.NewObjectNotFoundErrorWithCause(
		"document",
		strconv.FormatInt(d.ID(), 10),
		errs.NewPermissionDeniedError(fmt.Sprintf("delete document %d", d.ID())),
	)
}
