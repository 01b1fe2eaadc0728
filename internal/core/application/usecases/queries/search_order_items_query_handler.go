package queries

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchOrderItemsQueryHandler matches item names case-insensitively,
// newest first, within the orders the principal can see.
type SearchOrderItemsQueryHandler struct {
	db         *gorm.DB
	visibility visibility
}

func NewSearchOrderItemsQueryHandler(db *gorm.DB) SearchOrderItemsQueryHandler {
	return SearchOrderItemsQueryHandler{db: db, visibility: newVisibility()}
}

func (h SearchOrderItemsQueryHandler) Handle(ctx context.Context, query SearchOrderItemsQuery) ([]ItemSearchResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	results := make([]ItemSearchResult, 0)
	if !query.IsSearchable() {
		return results, nil
	}

	visible, args := h.visibility.where(query.Principal())
	args = append([]any{"%" + likeEscaper.Replace(query.Term()) + "%"}, args...)
	args = append(args, ItemSearchLimit)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.id,
			i.order_id,
			o.order_number,
			i.name,
			i.quantity,
			i.unit_price,
			i.total_price,
			i.created_at
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE i.name ILIKE ? AND `+visible+`
		ORDER BY i.created_at DESC, i.id DESC
		LIMIT ?
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var r ItemSearchResult
		var unitPrice, totalPrice decimal.NullDecimal

		err = rows.Scan(&r.ID, &r.OrderID, &r.OrderNumber, &r.Name, &r.Quantity, &unitPrice, &totalPrice, &r.CreatedAt)
		if err != nil {
			return nil, err
		}
		r.UnitPrice = decimalPtr(unitPrice)
		r.TotalPrice = decimalPtr(totalPrice)
		results = append(results, r)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
