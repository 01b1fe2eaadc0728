package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/clock"
)

// UpdateOrderCommandHandler edits an order on behalf of its requester or a
// holder of orders.edit.all. Changed references are validated like on create.
type UpdateOrderCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
	policy     services.OrderPolicy
}

func NewUpdateOrderCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "update_order_handler"),
		policy:     services.NewOrderPolicy(),
	}
}

func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if err = h.policy.CanEdit(cmd.Principal(), aggregate); err != nil {
		return nil, err
	}

	patch := cmd.Patch()
	err = checkReferences(ctx, uow.ReferenceRepository(), order.Details{
		OrderTypeID:  patch.OrderTypeID,
		DepartmentID: patch.DepartmentID,
	})
	if err != nil {
		return nil, err
	}

	if err = aggregate.Apply(patch, h.clock.Now()); err != nil {
		return nil, err
	}
	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Order updated", "order_id", aggregate.ID(), "updated_by", cmd.Principal().UserID())
	return aggregate, nil
}
