package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/clock"
)

// AddCommentCommandHandler comments on an order the caller can see.
type AddCommentCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
	policy     services.OrderPolicy
}

func NewAddCommentCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) AddCommentCommandHandler {
	return AddCommentCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "add_comment_handler"),
		policy:     services.NewOrderPolicy(),
	}
}

func (h AddCommentCommandHandler) Handle(ctx context.Context, cmd AddCommentCommand) (*order.Comment, error) {
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

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.CanView(cmd.Principal(), aggregate); err != nil {
		return nil, err
	}

	comment, err := order.NewComment(aggregate.ID(), cmd.Principal().UserID(), cmd.Text(), cmd.IsInternal(), h.clock.Now())
	if err != nil {
		return nil, err
	}
	if err = uow.CommentRepository().Add(ctx, comment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Comment added", "order_id", aggregate.ID(), "comment_id", comment.ID())
	return comment, nil
}
