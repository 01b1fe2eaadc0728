package queries

import (
	"context"

	"gorm.io/gorm"
)

// GetOrderHistoryQueryHandler applies the visibility rule of GetOrder.
type GetOrderHistoryQueryHandler struct {
	db         *gorm.DB
	visibility visibility
}

func NewGetOrderHistoryQueryHandler(db *gorm.DB) GetOrderHistoryQueryHandler {
	return GetOrderHistoryQueryHandler{db: db, visibility: newVisibility()}
}

func (h GetOrderHistoryQueryHandler) Handle(ctx context.Context, query GetOrderHistoryQuery) ([]HistoryEntryView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.visibility.authorize(ctx, h.db, query.Principal(), query.OrderID()); err != nil {
		return nil, err
	}
	return loadHistory(ctx, h.db, query.OrderID())
}
