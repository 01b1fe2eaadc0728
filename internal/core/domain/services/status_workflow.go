package services

import (
	"time"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
)

// StatusWorkflow performs an authorized status transition on an order.
//
// Business rules:
//   - the transition must be listed in the transition table; an unlisted pair
//     is InvalidTransition whatever the principal holds
//   - the principal must then hold the permission mapped to the target status
//     (access.RequiredForTransitionTo); the mapping is authoritative
//   - every successful transition yields exactly one history entry, which the
//     caller must persist in the same transaction as the order
//
// Example usage:
//
//	entry, err := services.NewStatusWorkflow().ChangeStatus(principal, o, order.Approved, nil, now)
//	if err != nil {
//	    return err // InvalidTransition or PermissionDenied
//	}
//	// persist o and entry atomically
type StatusWorkflow struct{}

func NewStatusWorkflow() StatusWorkflow {
	return StatusWorkflow{}
}

// ChangeStatus authorizes and applies o -> target and returns the history entry.
// On error the order is left untouched.
func (StatusWorkflow) ChangeStatus(
	p access.Principal,
	o *order.Order,
	target order.Status,
	comments *string,
	now time.Time,
) (order.WorkflowEntry, error) {
	if _, err := o.Status().TransitionTo(target); err != nil {
		return order.WorkflowEntry{}, err
	}

	required, err := access.RequiredForTransitionTo(target)
	if err != nil {
		return order.WorkflowEntry{}, err
	}
	if err = p.Require(required); err != nil {
		return order.WorkflowEntry{}, err
	}

	from, err := o.ChangeStatus(target, now)
	if err != nil {
		return order.WorkflowEntry{}, err
	}

	return order.NewTransitionEntry(o.ID(), from, o.Status(), p.UserID(), now, comments)
}
