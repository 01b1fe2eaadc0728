package access

import (
	"fmt"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"
)

// Permission is a grantable capability code.
type Permission string

const (
	OrdersCreate   Permission = "orders.create"
	OrdersViewAll  Permission = "orders.view.all"
	OrdersEditAll  Permission = "orders.edit.all"
	OrdersDelete   Permission = "orders.delete"
	OrdersApprove  Permission = "orders.approve"
	OrdersComplete Permission = "orders.complete"
	OrdersCancel   Permission = "orders.cancel"
	OrdersArchive  Permission = "orders.archive"
)

// AllPermissions lists every permission the engine checks.
func AllPermissions() []Permission {
	return []Permission{
		OrdersCreate, OrdersViewAll, OrdersEditAll, OrdersDelete,
		OrdersApprove, OrdersComplete, OrdersCancel, OrdersArchive,
	}
}

func (p Permission) String() string {
	return string(p)
}

// RequiredForTransitionTo returns the permission a caller needs to move an
// order into target. The mapping depends on the target only; whether the move
// is legal at all is decided by the transition table.
//
// Submitting for review is gated by orders.view.all, as in the permission
// graph administrators already maintain.
func RequiredForTransitionTo(target order.Status) (Permission, error) {
	switch target {
	case order.Review:
		return OrdersViewAll, nil
	case order.Approved, order.Rejected:
		return OrdersApprove, nil
	case order.Completed:
		return OrdersComplete, nil
	case order.Cancelled:
		return OrdersCancel, nil
	case order.Archived:
		return OrdersArchive, nil
	case order.Pending:
		return OrdersEditAll, nil
	case order.Unknown:
		return "", errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%s has no permission", target))
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d has no permission", target))
	}
}
