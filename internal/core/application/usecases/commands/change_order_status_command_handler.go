package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/clock"
)

// ChangeOrderStatusCommandHandler applies a lifecycle transition.
//
// The order row is locked for the rest of the transaction and the write is
// version-checked, so two concurrent transitions of one order serialize and
// the loser is evaluated against the winner's status. The history entry is
// written in the same transaction as the status.
//
// The permission mapped to the target status is checked before the legality
// of the transition, so callers without it learn nothing about the current
// status.
type ChangeOrderStatusCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
	workflow   services.StatusWorkflow
}

func NewChangeOrderStatusCommandHandler(
	uowFactory UoWFactory,
	clk clock.Clock,
	logger *slog.Logger,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "change_order_status_handler"),
		workflow:   services.NewStatusWorkflow(),
	}
}

// Handle returns the order in its new status together with the recorded
// history entry.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (*order.Order, order.WorkflowEntry, error) {
	if err := cmd.Validate(); err != nil {
		return nil, order.WorkflowEntry{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.WorkflowEntry{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, order.WorkflowEntry{}, err
	}

	principal := cmd.Principal()
	entry, err := h.workflow.ChangeStatus(principal, aggregate, cmd.Target(), cmd.Comments(), h.clock.Now())
	if err != nil {
		return nil, order.WorkflowEntry{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, order.WorkflowEntry{}, err
	}
	if entry, err = uow.WorkflowRepository().Record(ctx, entry); err != nil {
		return nil, order.WorkflowEntry{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, order.WorkflowEntry{}, err
	}

	h.logger.InfoContext(ctx, "Order status changed",
		"order_id", aggregate.ID(),
		"from", entry.From().String(),
		"to", entry.To().String(),
		"changed_by", principal.UserID())

	return aggregate, entry, nil
}
