package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
)

// DeleteOrderCommandHandler removes an order together with its items,
// comments, documents and history. Stored document files are released only
// after the rows are gone; a file that cannot be released is logged and left
// behind.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
	files      ports.FileStore
	logger     *slog.Logger
	policy     services.OrderPolicy
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory, files ports.FileStore, logger *slog.Logger) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{
		uowFactory: uowFactory,
		files:      files,
		logger:     logger.With("component", "delete_order_handler"),
		policy:     services.NewOrderPolicy(),
	}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.CanDelete(cmd.Principal()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if _, err := uow.OrderRepository().Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	documents, err := uow.DocumentRepository().ListByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = uow.OrderRepository().Delete(ctx, cmd.OrderID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.WarnContext(ctx, "Order deleted",
		"order_id", cmd.OrderID(), "deleted_by", cmd.Principal().UserID(), "documents", len(documents))

	for _, document := range documents {
		releaseFile(ctx, h.files, h.logger, document.File().Reference)
	}
	return nil
}

// releaseFile deletes a stored file whose metadata is already gone. Failures
// only leave an orphaned file, so they are logged instead of returned.
func releaseFile(ctx context.Context, files ports.FileStore, logger *slog.Logger, reference string) {
	if err := files.Delete(context.WithoutCancel(ctx), reference); err != nil {
		logger.ErrorContext(ctx, "Failed to release stored file", "reference", reference, "error", err)
	}
}
