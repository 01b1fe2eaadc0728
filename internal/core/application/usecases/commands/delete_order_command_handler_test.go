package commands_test

import (
	"strings"
	"testing"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteOrderCommandHandler_Handle(t *testing.T) {
	t.Run("removes the order with children and releases files", func(t *testing.T) {
		e := newEngine()
		requester := access.MustNewPrincipal(7, access.OrdersCreate)
		created := createOrder(t, e, requester)
		comment := addComment(t, e, requester, created.ID(), "first")
		document := uploadDocument(t, e, requester, created.ID(), "quote.pdf")
		require.Equal(t, 1, e.files.stored())

		cmd, err := commands.NewDeleteOrderCommand(access.MustNewPrincipal(1, access.OrdersDelete), created.ID())
		require.NoError(t, err)

		require.NoError(t, e.deleteOrder.Handle(t.Context(), cmd))

		assert.Nil(t, e.store.order(created.ID()))
		assert.Empty(t, e.store.historyOf(created.ID()))
		assert.NotContains(t, e.store.comments, comment.ID())
		assert.NotContains(t, e.store.documents, document.ID())
		assert.Equal(t, 0, e.files.stored())
		assert.Equal(t, []string{document.File().Reference}, e.files.deleted)
	})

	t.Run("requires orders.delete even for the requester", func(t *testing.T) {
		e := newEngine()
		created := createOrder(t, e, access.MustNewPrincipal(7, access.OrdersCreate))
		owner := access.MustNewPrincipal(7, access.OrdersCreate, access.OrdersEditAll, access.OrdersViewAll)
		cmd, _ := commands.NewDeleteOrderCommand(owner, created.ID())

		err := e.deleteOrder.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrPermissionDenied)
		assert.NotNil(t, e.store.order(created.ID()))
	})

	t.Run("missing order", func(t *testing.T) {
		e := newEngine()
		cmd, _ := commands.NewDeleteOrderCommand(access.MustNewPrincipal(1, access.OrdersDelete), 404)

		err := e.deleteOrder.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Contains(t, err.Error(), "404")
	})
}

func uploadDocument(t *testing.T, e *engine, p access.Principal, orderID int64, name string) *order.Document {
	t.Helper()

	cmd, err := commands.NewUploadDocumentCommand(p, orderID, name, "application/pdf", strings.NewReader("%PDF-1.7"), nil)
	require.NoError(t, err)

	document, err := e.upload.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return document
}

func addComment(t *testing.T, e *engine, p access.Principal, orderID int64, text string) *order.Comment {
	t.Helper()

	cmd, err := commands.NewAddCommentCommand(p, orderID, text, false)
	require.NoError(t, err)

	comment, err := e.addComment.Handle(t.Context(), cmd)
	require.NoError(t, err)
	return comment
}
