package queries

import (
	"context"

	"gorm.io/gorm"
)

// ListOrderCommentsQueryHandler applies the visibility rule of GetOrder.
type ListOrderCommentsQueryHandler struct {
	db         *gorm.DB
	visibility visibility
}

func NewListOrderCommentsQueryHandler(db *gorm.DB) ListOrderCommentsQueryHandler {
	return ListOrderCommentsQueryHandler{db: db, visibility: newVisibility()}
}

func (h ListOrderCommentsQueryHandler) Handle(ctx context.Context, query ListOrderCommentsQuery) ([]CommentView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.visibility.authorize(ctx, h.db, query.Principal(), query.OrderID()); err != nil {
		return nil, err
	}
	return loadComments(ctx, h.db, query.OrderID())
}
