package queries

import (
	"context"

	"gorm.io/gorm"
)

type ListOrderStatusesQueryHandler struct {
	db *gorm.DB
}

func NewListOrderStatusesQueryHandler(db *gorm.DB) ListOrderStatusesQueryHandler {
	return ListOrderStatusesQueryHandler{db: db}
}

func (h ListOrderStatusesQueryHandler) Handle(ctx context.Context, query ListOrderStatusesQuery) ([]OrderStatusView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, code, name, COALESCE(name_ka, ''), COALESCE(color, ''), order_seq
		FROM order_statuses
		WHERE is_active
		ORDER BY order_seq, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	statuses := make([]OrderStatusView, 0)
	for rows.Next() {
		var s OrderStatusView
		if err = rows.Scan(&s.ID, &s.Code, &s.Name, &s.NameKa, &s.Color, &s.OrderSeq); err != nil {
			return nil, err
		}
		statuses = append(statuses, s)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return statuses, nil
}

type ListOrderTypesQueryHandler struct {
	db *gorm.DB
}

func NewListOrderTypesQueryHandler(db *gorm.DB) ListOrderTypesQueryHandler {
	return ListOrderTypesQueryHandler{db: db}
}

func (h ListOrderTypesQueryHandler) Handle(ctx context.Context, query ListOrderTypesQuery) ([]OrderTypeView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, code, name, COALESCE(name_ka, ''), requires_approval, approval_levels
		FROM order_types
		WHERE is_active
		ORDER BY name, id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]OrderTypeView, 0)
	for rows.Next() {
		var t OrderTypeView
		if err = rows.Scan(&t.ID, &t.Code, &t.Name, &t.NameKa, &t.RequiresApproval, &t.ApprovalLevels); err != nil {
			return nil, err
		}
		types = append(types, t)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return types, nil
}
