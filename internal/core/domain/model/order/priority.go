package order

import (
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"
)

// Priority ranks how urgent an order is for its approvers.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// ParsePriority normalises a priority code. An empty code means PriorityMedium.
func ParsePriority(code string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(code))); p {
	case "":
		return PriorityMedium, nil
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("priority", fmt.Errorf("%q is not one of low, medium, high", code))
	}
}

func (p Priority) String() string {
	return string(p)
}
