package queries

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strconv"

	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// DocumentContent is an open document file. The caller closes Content.
type DocumentContent struct {
	FileName string
	MimeType string
	Size     int64
	Content  io.ReadCloser
}

// GetDocumentContentQueryHandler applies the visibility rule of GetOrder and
// then opens the stored file.
type GetDocumentContentQueryHandler struct {
	db         *gorm.DB
	files      ports.FileReader
	visibility visibility
}

func NewGetDocumentContentQueryHandler(db *gorm.DB, files ports.FileReader) GetDocumentContentQueryHandler {
	return GetDocumentContentQueryHandler{db: db, files: files, visibility: newVisibility()}
}

func (h GetDocumentContentQueryHandler) Handle(ctx context.Context, query GetDocumentContentQuery) (DocumentContent, error) {
	if err := query.Validate(); err != nil {
		return DocumentContent{}, err
	}
	if err := h.visibility.authorize(ctx, h.db, query.Principal(), query.OrderID()); err != nil {
		return DocumentContent{}, err
	}

	var (
		doc       DocumentContent
		reference string
	)
	err := h.db.WithContext(ctx).Raw(`
		SELECT file_name, COALESCE(mime_type, ''), file_size, file_path
		FROM order_documents
		WHERE id = ? AND order_id = ?
	`, query.DocumentID(), query.OrderID()).Row().Scan(&doc.FileName, &doc.MimeType, &doc.Size, &reference)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DocumentContent{}, errs.NewObjectNotFoundError("document", strconv.FormatInt(query.DocumentID(), 10))
		}
		return DocumentContent{}, err
	}

	doc.Content, err = h.files.Open(ctx, reference)
	if err != nil {
		return DocumentContent{}, err
	}
	return doc, nil
}
