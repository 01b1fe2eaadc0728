package access_test

import (
	"testing"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrincipal(t *testing.T) {
	t.Run("resolved codes are held", func(t *testing.T) {
		p, err := access.NewPrincipal(9, "orders.approve", "assets.view")

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, int64(9), p.UserID())
		assert.True(t, p.Has(access.OrdersApprove))
		assert.False(t, p.Has(access.OrdersDelete))
		assert.Len(t, p.Permissions(), 2)
	})

	t.Run("codes are matched exactly", func(t *testing.T) {
		p, err := access.NewPrincipal(9, "Orders.Approve")

		require.NoError(t, err)
		assert.False(t, p.Has(access.OrdersApprove))
	})

	t.Run("user id is required", func(t *testing.T) {
		_, err := access.NewPrincipal(0)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		var p access.Principal

		require.ErrorIs(t, p.Validate(), access.ErrPrincipalIsNotConstructed)
		assert.False(t, p.Has(access.OrdersCreate))
	})
}

func TestPrincipal_Require(t *testing.T) {
	p := access.MustNewPrincipal(7, access.OrdersCreate)

	require.NoError(t, p.Require(access.OrdersCreate))

	err := p.Require(access.OrdersApprove)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Equal(t, "permission denied: orders.approve", err.Error())
}
