package order

import (
	"fmt"
	"slices"
	"strings"

	"procurement/internal/pkg/errs"
)

// Status is the lifecycle state of an order. The set is closed and doubles as
// the state set of the workflow state machine.
//
// State transitions:
//
//	Pending ──> Review ──> Approved ──> Completed
//	  │  ▲        │ │ ▲        │            │
//	  │  └────────┘ │ │        ▼            │
//	  │             ▼ │     Cancelled       │
//	  ▼          Rejected      │            │
//	Cancelled      │           │            │
//	  └────────────┴───────────┴────────────┴──> Archived (terminal)
//
// Every state other than Archived may move to Archived. Rejected orders may be
// re-opened to Pending, and Review may send an order back to Pending.
type Status int

const (
	// Unknown catches uninitialised Status values and unrecognised codes.
	Unknown Status = iota

	// Pending is the initial status of every order.
	Pending

	// Review means the order was submitted for approval.
	Review

	// Approved orders are waiting to be fulfilled.
	Approved

	// Completed orders were fulfilled; only archival remains.
	Completed

	// Cancelled orders were withdrawn; only archival remains.
	Cancelled

	// Rejected orders were turned down by an approver and may be re-opened.
	Rejected

	// Archived is terminal: no transition leaves it.
	Archived
)

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Review, Approved, Completed, Cancelled, Rejected, Archived}
}

// ParseStatus maps a status code to its Status. Codes are matched after
// trimming and lower-casing, so "Approved" and " approved" are the same code.
func ParseStatus(code string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(code)) {
	case "pending":
		return Pending, nil
	case "review":
		return Review, nil
	case "approved":
		return Approved, nil
	case "completed":
		return Completed, nil
	case "cancelled":
		return Cancelled, nil
	case "rejected":
		return Rejected, nil
	case "archived":
		return Archived, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%q is not a known status code", code),
		)
	}
}

// String returns the status code as stored in order_statuses.code.
func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Review:
		return "review"
	case Approved:
		return "approved"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	case Rejected:
		return "rejected"
	case Archived:
		return "archived"
	case Unknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if s <= Unknown || s > Archived {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// AllowedTransitions returns the statuses reachable from s in one step.
// The result is a fresh slice and may be modified by the caller.
func (s Status) AllowedTransitions() []Status {
	switch s {
	case Pending:
		return []Status{Review, Cancelled, Archived}
	case Review:
		return []Status{Approved, Rejected, Pending, Archived}
	case Approved:
		return []Status{Completed, Cancelled, Archived}
	case Completed:
		return []Status{Archived}
	case Cancelled:
		return []Status{Archived}
	case Rejected:
		return []Status{Pending, Archived}
	case Archived, Unknown:
		return nil
	default:
		return nil
	}
}

// CanTransitionTo reports whether the table allows s -> to. Self transitions
// are never listed and therefore never allowed.
func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(s.AllowedTransitions(), to)
}

// TransitionTo returns to when the move is allowed, and an
// InvalidTransitionError otherwise.
func (s Status) TransitionTo(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return s, errs.NewInvalidTransitionError(s.String(), to.String())
	}
	return to, nil
}

// IsValidTransition answers the transition table for raw status codes.
// Unknown codes on either side yield false.
func IsValidTransition(from, to string) bool {
	fromStatus, err := ParseStatus(from)
	if err != nil {
		return false
	}
	toStatus, err := ParseStatus(to)
	if err != nil {
		return false
	}
	return fromStatus.CanTransitionTo(toStatus)
}
