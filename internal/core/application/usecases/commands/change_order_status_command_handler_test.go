package commands_test

import (
	"errors"
	"testing"
	"time"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/clock"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedOrderIn(t *testing.T, e *engine, status order.Status) *order.Order {
	t.Helper()

	o, err := order.RestoreOrder(order.Snapshot{
		Number:      "ORD-2026100001",
		Status:      status,
		RequesterID: 7,
		Details:     laptopDetails(),
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	})
	require.NoError(t, err)
	return e.store.put(o)
}

func changeStatus(t *testing.T, e *engine, p access.Principal, orderID int64, code string) (*order.Order, error) {
	t.Helper()

	cmd, err := commands.NewChangeOrderStatusCommand(p, orderID, code, nil)
	require.NoError(t, err)

	o, _, err := e.changeStatus.Handle(t.Context(), cmd)
	return o, err
}

func TestChangeOrderStatusCommandHandler_TransitionGrid(t *testing.T) {
	admin := access.MustNewPrincipal(9, access.AllPermissions()...)

	for _, from := range order.AllStatuses() {
		for _, to := range order.AllStatuses() {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				e := newEngine()
				stored := storedOrderIn(t, e, from)

				changed, err := changeStatus(t, e, admin, stored.ID(), to.String())

				history := e.store.historyOf(stored.ID())
				if !from.CanTransitionTo(to) {
					require.ErrorIs(t, err, errs.ErrInvalidTransition)
					_, err = changeStatus(t, e, access.MustNewPrincipal(7), stored.ID(), to.String())
					require.ErrorIs(t, err, errs.ErrInvalidTransition)
					assert.Equal(t, from, e.store.order(stored.ID()).Status())
					assert.Empty(t, history)
					return
				}

				require.NoError(t, err)
				assert.Equal(t, to, changed.Status())
				assert.Equal(t, to, e.store.order(stored.ID()).Status())
				assert.Equal(t, int64(2), e.store.order(stored.ID()).Version())
				require.Len(t, history, 1)
				require.NotNil(t, history[0].From())
				assert.Equal(t, from, *history[0].From())
				assert.Equal(t, to, history[0].To())
				assert.Equal(t, int64(9), history[0].ChangedBy())
			})
		}
	}
}

func TestChangeOrderStatusCommandHandler_RequiresMappedPermission(t *testing.T) {
	for _, to := range order.AllStatuses() {
		required, err := access.RequiredForTransitionTo(to)
		require.NoError(t, err)

		for _, from := range order.AllStatuses() {
			if !from.CanTransitionTo(to) {
				continue
			}

			t.Run(from.String()+"->"+to.String()+" without "+required.String(), func(t *testing.T) {
				e := newEngine()
				stored := storedOrderIn(t, e, from)

				var others []access.Permission
				for _, p := range access.AllPermissions() {
					if p != required {
						others = append(others, p)
					}
				}

				_, err := changeStatus(t, e, access.MustNewPrincipal(9, others...), stored.ID(), to.String())

				require.ErrorIs(t, err, errs.ErrPermissionDenied)
				assert.Equal(t, from, e.store.order(stored.ID()).Status())
				assert.Empty(t, e.store.historyOf(stored.ID()))
			})
		}
	}
}

func TestChangeOrderStatusCommandHandler_Scenario(t *testing.T) {
	e := newEngine()
	requester := access.MustNewPrincipal(7, access.OrdersCreate)
	approver := access.MustNewPrincipal(9, access.OrdersApprove)
	reviewer := access.MustNewPrincipal(11, access.OrdersViewAll)

	cmd, err := commands.NewCreateOrderCommand(requester, laptopDetails(), []order.ItemDetails{{Name: "Laptop", Quantity: 3}})
	require.NoError(t, err)
	result, err := e.create.Handle(t.Context(), cmd)
	require.NoError(t, err)
	id := result.Order.ID()

	assert.Equal(t, order.Pending, result.Order.Status())
	require.Len(t, e.store.historyOf(id), 1)
	assert.Nil(t, e.store.historyOf(id)[0].From())

	// pending -> approved is not in the table, so legality wins over the
	// requester's missing orders.approve
	_, err = changeStatus(t, e, requester, id, "approved")
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	_, err = changeStatus(t, e, requester, id, "review")
	require.ErrorIs(t, err, errs.ErrPermissionDenied)

	_, err = changeStatus(t, e, approver, id, "completed")
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
	assert.NotErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Equal(t, order.Pending, e.store.order(id).Status())
	require.Len(t, e.store.historyOf(id), 1)

	_, err = changeStatus(t, e, reviewer, id, "review")
	require.NoError(t, err)
	history := e.store.historyOf(id)
	require.Len(t, history, 2)
	assert.Equal(t, order.Pending, *history[1].From())
	assert.Equal(t, order.Review, history[1].To())

	_, err = changeStatus(t, e, requester, id, "approved")
	require.ErrorIs(t, err, errs.ErrPermissionDenied)

	e.clock.Advance(time.Hour)
	approved, err := changeStatus(t, e, approver, id, "approved")
	require.NoError(t, err)
	require.NotNil(t, approved.ApprovedDate())
	assert.Equal(t, testNow.Add(time.Hour), *approved.ApprovedDate())

	history = e.store.historyOf(id)
	require.Len(t, history, 3)
	assert.Equal(t, order.Review, *history[2].From())
	assert.Equal(t, order.Approved, history[2].To())
	assert.Equal(t, order.Approved, e.store.order(id).Status())
}

func TestChangeOrderStatusCommandHandler_Errors(t *testing.T) {
	admin := access.MustNewPrincipal(9, access.AllPermissions()...)

	t.Run("unknown status code is a validation error", func(t *testing.T) {
		_, err := commands.NewChangeOrderStatusCommand(admin, 1, "draft", nil)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing order is not found", func(t *testing.T) {
		e := newEngine()

		_, err := changeStatus(t, e, admin, 404, "review")

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("comments are kept on the history entry", func(t *testing.T) {
		e := newEngine()
		stored := storedOrderIn(t, e, order.Pending)
		note := "  budget confirmed  "
		cmd, _ := commands.NewChangeOrderStatusCommand(admin, stored.ID(), "REVIEW", &note)

		_, entry, err := e.changeStatus.Handle(t.Context(), cmd)

		require.NoError(t, err)
		require.NotNil(t, entry.Comments())
		assert.Equal(t, "budget confirmed", *entry.Comments())
		assert.NotZero(t, entry.ID())
	})

	t.Run("version conflict rolls back without history", func(t *testing.T) {
		ctx := t.Context()
		stored, err := order.RestoreOrder(order.Snapshot{
			ID: 1, Number: "ORD-2026100001", Status: order.Pending, RequesterID: 7,
			Details: laptopDetails(), Version: 1,
		})
		require.NoError(t, err)
		cmd, _ := commands.NewChangeOrderStatusCommand(admin, 1, "review", nil)

		repo := new(MockOrderRepository)
		uow := new(MockUoW)
		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(repo).Once(),
			repo.On("GetForUpdate", ctx, int64(1)).Return(stored, nil).Once(),
			repo.On("Update", ctx, stored).Return(errs.NewConflictError("order 1")).Once(),
			uow.On("Rollback", ctx).Return(nil).Once(),
		)
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewChangeOrderStatusCommandHandler(factory, clock.NewFixed(testNow), discardLogger())
		_, _, err = h.Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrConflict)
		uow.AssertNotCalled(t, "WorkflowRepository")
		uow.AssertNotCalled(t, "Commit", mock.Anything)
		repo.AssertExpectations(t)
	})

	t.Run("begin error", func(t *testing.T) {
		ctx := t.Context()
		cmd, _ := commands.NewChangeOrderStatusCommand(admin, 1, "review", nil)
		uow := new(MockUoW)
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once()
		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()

		h := commands.NewChangeOrderStatusCommandHandler(factory, clock.NewFixed(testNow), discardLogger())
		_, _, err := h.Handle(ctx, cmd)

		require.EqualError(t, err, "begin error")
	})
}
