package queries

import (
	"context"
	"database/sql"
	"errors"
	"strconv"

	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler assembles the order detail page: the order row joined
// with its status, type and department names, then each child collection.
//
// Errors:
//   - ObjectNotFound when the order does not exist
//   - PermissionDenied when the principal is neither requester nor creator
//     and lacks orders.view.all
type GetOrderQueryHandler struct {
	db         *gorm.DB
	visibility visibility
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, visibility: newVisibility()}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderDetail, error) {
	if err := query.Validate(); err != nil {
		return OrderDetail{}, err
	}
	if err := h.visibility.authorize(ctx, h.db, query.Principal(), query.OrderID()); err != nil {
		return OrderDetail{}, err
	}

	detail, err := h.loadOrder(ctx, query.OrderID())
	if err != nil {
		return OrderDetail{}, err
	}

	if detail.Items, err = loadItems(ctx, h.db, detail.ID); err != nil {
		return OrderDetail{}, err
	}
	if detail.Documents, err = loadDocuments(ctx, h.db, detail.ID); err != nil {
		return OrderDetail{}, err
	}
	if detail.Comments, err = loadComments(ctx, h.db, detail.ID); err != nil {
		return OrderDetail{}, err
	}
	if detail.History, err = loadHistory(ctx, h.db, detail.ID); err != nil {
		return OrderDetail{}, err
	}
	return detail, nil
}

func (h GetOrderQueryHandler) loadOrder(ctx context.Context, orderID int64) (OrderDetail, error) {
	var d OrderDetail
	var amount decimal.NullDecimal

	err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.order_number,
			o.order_type_id,
			ot.name,
			ot.name_ka,
			s.id,
			s.code,
			s.name,
			COALESCE(s.name_ka, ''),
			o.requester_id,
			o.department_id,
			d.name,
			o.title,
			o.description,
			o.priority,
			o.estimated_amount,
			o.currency,
			o.requested_date,
			o.required_by_date,
			o.approved_date,
			o.completed_date,
			o.created_by,
			o.created_at,
			o.updated_at,
			o.version,
			o.metadata
		FROM orders o
		JOIN order_statuses s ON s.id = o.status_id
		LEFT JOIN order_types ot ON ot.id = o.order_type_id
		LEFT JOIN departments d ON d.id = o.department_id
		WHERE o.id = ?
	`, orderID).Row().Scan(
		&d.ID,
		&d.OrderNumber,
		&d.OrderTypeID,
		&d.OrderTypeName,
		&d.OrderTypeNameKa,
		&d.Status.ID,
		&d.Status.Code,
		&d.Status.Name,
		&d.Status.NameKa,
		&d.RequesterID,
		&d.DepartmentID,
		&d.DepartmentName,
		&d.Title,
		&d.Description,
		&d.Priority,
		&amount,
		&d.Currency,
		&d.RequestedDate,
		&d.RequiredByDate,
		&d.ApprovedDate,
		&d.CompletedDate,
		&d.CreatedBy,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Version,
		&d.Metadata,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return OrderDetail{}, errs.NewObjectNotFoundError("order", strconv.FormatInt(orderID, 10))
		}
		return OrderDetail{}, err
	}

	d.EstimatedAmount = decimalPtr(amount)
	return d, nil
}
