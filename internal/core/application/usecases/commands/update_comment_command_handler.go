package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/clock"
)

// UpdateCommentCommandHandler edits a comment; only its author or a holder of
// orders.edit.all may.
type UpdateCommentCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
	ownership  services.OwnershipGuard
}

func NewUpdateCommentCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) UpdateCommentCommandHandler {
	return UpdateCommentCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "update_comment_handler"),
		ownership:  services.NewOwnershipGuard(),
	}
}

func (h UpdateCommentCommandHandler) Handle(ctx context.Context, cmd UpdateCommentCommand) (*order.Comment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	comments := uow.CommentRepository()
	comment, err := comments.Get(ctx, cmd.OrderID(), cmd.CommentID())
	if err != nil {
		return nil, err
	}
	if err = h.ownership.CanModifyComment(cmd.Principal(), comment); err != nil {
		return nil, err
	}

	if err = comment.Edit(cmd.Text(), cmd.IsInternal(), h.clock.Now()); err != nil {
		return nil, err
	}
	if err = comments.Update(ctx, comment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Comment updated", "order_id", cmd.OrderID(), "comment_id", comment.ID())
	return comment, nil
}
