package services

import (
	"fmt"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
)

// OrderPolicy decides which orders a principal may create, see, edit and delete.
//
// Business rules:
//   - creating requires orders.create
//   - the requester and the creator see their own orders; everyone else needs
//     orders.view.all
//   - the requester edits their own orders; everyone else needs orders.edit.all
//   - deleting requires orders.delete, regardless of ownership
type OrderPolicy struct{}

func NewOrderPolicy() OrderPolicy {
	return OrderPolicy{}
}

func (OrderPolicy) CanCreate(p access.Principal) error {
	return p.Require(access.OrdersCreate)
}

// CanView returns PermissionDenied for orders the principal may not see.
func (OrderPolicy) CanView(p access.Principal, o *order.Order) error {
	if p.Has(access.OrdersViewAll) || o.IsVisibleTo(p.UserID()) {
		return nil
	}
	return errs.NewPermissionDeniedError(fmt.Sprintf("view order %d", o.ID()))
}

// SeesAll reports whether list queries may skip the ownership filter.
func (OrderPolicy) SeesAll(p access.Principal) bool {
	return p.Has(access.OrdersViewAll)
}

func (OrderPolicy) CanEdit(p access.Principal, o *order.Order) error {
	if p.Has(access.OrdersEditAll) || o.IsRequestedBy(p.UserID()) {
		return nil
	}
	return errs.NewPermissionDeniedError(fmt.Sprintf("edit order %d", o.ID()))
}

func (OrderPolicy) CanDelete(p access.Principal) error {
	return p.Require(access.OrdersDelete)
}
