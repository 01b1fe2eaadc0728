package queries

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListOrdersQueryHandler filters visibility in SQL, so principals without
// orders.view.all only ever page through their own orders.
type ListOrdersQueryHandler struct {
	db         *gorm.DB
	visibility visibility
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, visibility: newVisibility()}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderSummary, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	visible, args := h.visibility.where(query.Principal())
	conditions := []string{visible}
	if query.Status() != nil {
		conditions = append(conditions, "o.status_id = ?")
		args = append(args, int64(*query.Status()))
	}
	if query.RequesterID() != nil {
		conditions = append(conditions, "o.requester_id = ?")
		args = append(args, *query.RequesterID())
	}
	args = append(args, query.Limit(), query.Offset())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.title,
			o.description,
			o.priority,
			s.id,
			s.code,
			s.name,
			COALESCE(s.name_ka, ''),
			o.order_type_id,
			o.requester_id,
			o.department_id,
			o.estimated_amount,
			o.currency,
			o.requested_date,
			o.required_by_date,
			o.created_at,
			(SELECT COUNT(*) FROM order_items i WHERE i.order_id = o.id)
		FROM orders o
		JOIN order_statuses s ON s.id = o.status_id
		WHERE `+strings.Join(conditions, " AND ")+`
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT ? OFFSET ?
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]OrderSummary, 0)
	for rows.Next() {
		var o OrderSummary
		var amount decimal.NullDecimal

		err = rows.Scan(
			&o.ID,
			&o.OrderNumber,
			&o.Title,
			&o.Description,
			&o.Priority,
			&o.Status.ID,
			&o.Status.Code,
			&o.Status.Name,
			&o.Status.NameKa,
			&o.OrderTypeID,
			&o.RequesterID,
			&o.DepartmentID,
			&amount,
			&o.Currency,
			&o.RequestedDate,
			&o.RequiredByDate,
			&o.CreatedAt,
			&o.ItemsCount,
		)
		if err != nil {
			return nil, err
		}
		o.EstimatedAmount = decimalPtr(amount)
		orders = append(orders, o)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}
