package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/services"
)

// DeleteCommentCommandHandler removes a comment; only its author or a holder
// of orders.edit.all may.
type DeleteCommentCommandHandler struct {
	uowFactory UoWFactory
	logger     *slog.Logger
	ownership  services.OwnershipGuard
}

func NewDeleteCommentCommandHandler(uowFactory UoWFactory, logger *slog.Logger) DeleteCommentCommandHandler {
	return DeleteCommentCommandHandler{
		uowFactory: uowFactory,
		logger:     logger.With("component", "delete_comment_handler"),
		ownership:  services.NewOwnershipGuard(),
	}
}

func (h DeleteCommentCommandHandler) Handle(ctx context.Context, cmd DeleteCommentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	comments := uow.CommentRepository()
	comment, err := comments.Get(ctx, cmd.OrderID(), cmd.CommentID())
	if err != nil {
		return err
	}
	if err = h.ownership.CanModifyComment(cmd.Principal(), comment); err != nil {
		return err
	}
	if err = comments.Delete(ctx, cmd.OrderID(), cmd.CommentID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Comment deleted",
		"order_id", cmd.OrderID(), "comment_id", cmd.CommentID(), "deleted_by", cmd.Principal().UserID())
	return nil
}
