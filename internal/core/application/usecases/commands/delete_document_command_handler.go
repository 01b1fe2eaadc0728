package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
)

// DeleteDocumentCommandHandler removes a document's metadata and then releases
// its stored file. A caller who is neither the uploader nor a holder of
// orders.delete is told the document does not exist.
type DeleteDocumentCommandHandler struct {
	uowFactory UoWFactory
	files      ports.FileStore
	logger     *slog.Logger
	ownership  services.OwnershipGuard
}

func NewDeleteDocumentCommandHandler(uowFactory UoWFactory, files ports.FileStore, logger *slog.Logger) DeleteDocumentCommandHandler {
	return DeleteDocumentCommandHandler{
		uowFactory: uowFactory,
		files:      files,
		logger:     logger.With("component", "delete_document_handler"),
		ownership:  services.NewOwnershipGuard(),
	}
}

func (h DeleteDocumentCommandHandler) Handle(ctx context.Context, cmd DeleteDocumentCommand) error {
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

	documents := uow.DocumentRepository()
	document, err := documents.Get(ctx, cmd.OrderID(), cmd.DocumentID())
	if err != nil {
		return err
	}
	if err = h.ownership.CanDeleteDocument(cmd.Principal(), document); err != nil {
		return err
	}
	if err = documents.Delete(ctx, cmd.OrderID(), cmd.DocumentID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.logger.InfoContext(ctx, "Document deleted",
		"order_id", cmd.OrderID(), "document_id", cmd.DocumentID(), "deleted_by", cmd.Principal().UserID())

	releaseFile(ctx, h.files, h.logger, document.File().Reference)
	return nil
}
