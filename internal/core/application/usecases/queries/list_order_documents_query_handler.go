package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrderDocumentsQueryHandler applies the visibility rule of GetOrder.
type ListOrderDocumentsQueryHandler struct {
	db         *gorm.DB
	visibility visibility
}

func NewListOrderDocumentsQueryHandler(db *gorm.DB) ListOrderDocumentsQueryHandler {
	return ListOrderDocumentsQueryHandler{db: db, visibility: newVisibility()}
}

func (h ListOrderDocumentsQueryHandler) Handle(ctx context.Context, query ListOrderDocumentsQuery) ([]DocumentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.visibility.authorize(ctx, h.db, query.Principal(), query.OrderID()); err != nil {
		return nil, err
	}
	return loadDocuments(ctx, h.db, query.OrderID())
}
