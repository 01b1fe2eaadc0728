package access_test

import (
	"testing"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Each target status is pinned to its permission. A change here is a change to
// who may approve, cancel or archive orders and must be deliberate.
func TestRequiredForTransitionTo_IsPinned(t *testing.T) {
	want := map[order.Status]access.Permission{
		order.Pending:   "orders.edit.all",
		order.Review:    "orders.view.all",
		order.Approved:  "orders.approve",
		order.Rejected:  "orders.approve",
		order.Completed: "orders.complete",
		order.Cancelled: "orders.cancel",
		order.Archived:  "orders.archive",
	}

	for _, status := range order.AllStatuses() {
		t.Run(status.String(), func(t *testing.T) {
			got, err := access.RequiredForTransitionTo(status)

			require.NoError(t, err)
			assert.Equal(t, want[status], got)
		})
	}
}

func TestRequiredForTransitionTo_Unknown(t *testing.T) {
	_, err := access.RequiredForTransitionTo(order.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = access.RequiredForTransitionTo(order.Status(42))
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAllPermissions_AreDistinct(t *testing.T) {
	seen := map[access.Permission]bool{}
	for _, p := range access.AllPermissions() {
		assert.False(t, seen[p], p.String())
		seen[p] = true
	}
	assert.Len(t, seen, 8)
}
