package ports

import (
	"context"

	"procurement/internal/core/domain/model/order"
)

// CommentRepository persists comments. Get and Delete are scoped to an order:
// a comment of another order is reported as not found.
type CommentRepository interface {
	Add(ctx context.Context, comment *order.Comment) error
	Get(ctx context.Context, orderID, commentID int64) (*order.Comment, error)
	Update(ctx context.Context, comment *order.Comment) error
	Delete(ctx context.Context, orderID, commentID int64) error
}

// DocumentRepository persists document metadata; file contents live in the
// FileStore.
type DocumentRepository interface {
	Add(ctx context.Context, document *order.Document) error
	Get(ctx context.Context, orderID, documentID int64) (*order.Document, error)
	Update(ctx context.Context, document *order.Document) error
	Delete(ctx context.Context, orderID, documentID int64) error

	// ListByOrder is used to release stored files when an order is deleted.
	ListByOrder(ctx context.Context, orderID int64) ([]*order.Document, error)
}
