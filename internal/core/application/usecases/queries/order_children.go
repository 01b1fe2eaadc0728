package queries

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func loadItems(ctx context.Context, db *gorm.DB, orderID int64) ([]ItemView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			asset_id,
			category_id,
			name,
			description,
			quantity,
			unit_price,
			total_price,
			notes,
			created_at
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ItemView, 0)
	for rows.Next() {
		var item ItemView
		var unitPrice, totalPrice decimal.NullDecimal

		err = rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.AssetID,
			&item.CategoryID,
			&item.Name,
			&item.Description,
			&item.Quantity,
			&unitPrice,
			&totalPrice,
			&item.Notes,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		item.UnitPrice = decimalPtr(unitPrice)
		item.TotalPrice = decimalPtr(totalPrice)
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func loadDocuments(ctx context.Context, db *gorm.DB, orderID int64) ([]DocumentView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			file_name,
			file_size,
			COALESCE(mime_type, ''),
			description,
			uploaded_by,
			uploaded_at
		FROM order_documents
		WHERE order_id = ?
		ORDER BY uploaded_at DESC, id DESC
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documents := make([]DocumentView, 0)
	for rows.Next() {
		var d DocumentView
		err = rows.Scan(&d.ID, &d.OrderID, &d.FileName, &d.FileSize, &d.MimeType, &d.Description, &d.UploadedBy, &d.UploadedAt)
		if err != nil {
			return nil, err
		}
		documents = append(documents, d)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return documents, nil
}

func loadComments(ctx context.Context, db *gorm.DB, orderID int64) ([]CommentView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT id, order_id, user_id, comment, is_internal, created_at, updated_at
		FROM order_comments
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	comments := make([]CommentView, 0)
	for rows.Next() {
		var c CommentView
		err = rows.Scan(&c.ID, &c.OrderID, &c.UserID, &c.Comment, &c.IsInternal, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return comments, nil
}

// loadHistory returns the entries oldest first with both statuses resolved.
func loadHistory(ctx context.Context, db *gorm.DB, orderID int64) ([]HistoryEntryView, error) {
	rows, err := db.WithContext(ctx).Raw(`
		SELECT
			h.id,
			h.from_status_id,
			fs.code,
			fs.name,
			fs.name_ka,
			ts.id,
			ts.code,
			ts.name,
			COALESCE(ts.name_ka, ''),
			h.changed_by,
			h.changed_at,
			h.comments
		FROM order_workflow_history h
		LEFT JOIN order_statuses fs ON fs.id = h.from_status_id
		JOIN order_statuses ts ON ts.id = h.to_status_id
		WHERE h.order_id = ?
		ORDER BY h.changed_at, h.id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make([]HistoryEntryView, 0)
	for rows.Next() {
		var e HistoryEntryView
		var fromID sql.NullInt64
		var fromCode, fromName, fromNameKa sql.NullString

		err = rows.Scan(
			&e.ID,
			&fromID,
			&fromCode,
			&fromName,
			&fromNameKa,
			&e.To.ID,
			&e.To.Code,
			&e.To.Name,
			&e.To.NameKa,
			&e.ChangedBy,
			&e.ChangedAt,
			&e.Comments,
		)
		if err != nil {
			return nil, err
		}
		if fromID.Valid {
			e.From = &StatusRef{ID: fromID.Int64, Code: fromCode.String, Name: fromName.String, NameKa: fromNameKa.String}
		}
		history = append(history, e)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	return history, nil
}
