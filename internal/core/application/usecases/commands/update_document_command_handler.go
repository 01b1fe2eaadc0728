package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/clock"
)

type UpdateDocumentCommandHandler struct {
	uowFactory UoWFactory
	clock      clock.Clock
	logger     *slog.Logger
	ownership  services.OwnershipGuard
}

func NewUpdateDocumentCommandHandler(uowFactory UoWFactory, clk clock.Clock, logger *slog.Logger) UpdateDocumentCommandHandler {
	return UpdateDocumentCommandHandler{
		uowFactory: uowFactory,
		clock:      clk,
		logger:     logger.With("component", "update_document_handler"),
		ownership:  services.NewOwnershipGuard(),
	}
}

func (h UpdateDocumentCommandHandler) Handle(ctx context.Context, cmd UpdateDocumentCommand) (*order.Document, error) {
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

	documents := uow.DocumentRepository()
	document, err := documents.Get(ctx, cmd.OrderID(), cmd.DocumentID())
	if err != nil {
		return nil, err
	}
	if err = h.ownership.CanEditDocument(cmd.Principal(), document); err != nil {
		return nil, err
	}

	document.Describe(cmd.Description(), h.clock.Now())
	if err = documents.Update(ctx, document); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "Document updated", "order_id", cmd.OrderID(), "document_id", document.ID())
	return document, nil
}
