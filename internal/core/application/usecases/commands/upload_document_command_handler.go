package commands

import (
	"context"
	"log/slog"

	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/domain/services"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/clock"
	"procurement/internal/pkg/errs"
)

// UploadDocumentCommandHandler stores the file first and then its metadata.
// If the file store fails nothing is written; if the metadata cannot be
// committed the stored file is released again.
type UploadDocumentCommandHandler struct {
	uowFactory UoWFactory
	files      ports.FileStore
	clock      clock.Clock
	logger     *slog.Logger
	policy     services.OrderPolicy
}

func NewUploadDocumentCommandHandler(
	uowFactory UoWFactory,
	files ports.FileStore,
	clk clock.Clock,
	logger *slog.Logger,
) UploadDocumentCommandHandler {
	return UploadDocumentCommandHandler{
		uowFactory: uowFactory,
		files:      files,
		clock:      clk,
		logger:     logger.With("component", "upload_document_handler"),
		policy:     services.NewOrderPolicy(),
	}
}

func (h UploadDocumentCommandHandler) Handle(ctx context.Context, cmd UploadDocumentCommand) (*order.Document, error) {
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

	reference, size, err := h.files.Save(ctx, cmd.FileName(), cmd.Content())
	if err != nil {
		return nil, errs.NewDependencyUnavailableError("file store", err)
	}

	document, err := h.persist(ctx, uow, cmd, order.StoredFile{
		Name:        cmd.FileName(),
		Reference:   reference,
		Size:        size,
		ContentType: cmd.ContentType(),
	})
	if err != nil {
		releaseFile(ctx, h.files, h.logger, reference)
		return nil, err
	}

	h.logger.InfoContext(ctx, "Document uploaded",
		"order_id", aggregate.ID(), "document_id", document.ID(), "size", size)
	return document, nil
}

func (h UploadDocumentCommandHandler) persist(
	ctx context.Context,
	uow UoW,
	cmd UploadDocumentCommand,
	file order.StoredFile,
) (*order.Document, error) {
	document, err := order.NewDocument(cmd.OrderID(), cmd.Principal().UserID(), file, cmd.Description(), h.clock.Now())
	if err != nil {
		return nil, err
	}
	if err = uow.DocumentRepository().Add(ctx, document); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return document, nil
}
