package commentrepo

import (
	"context"
	"errors"
	"strconv"

	"procurement/internal/adapters/out/postgres/pgerrs"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCommentRepository implements ports.CommentRepository. Lookups are
// scoped to the order so a comment id of another order reads as missing.
type GormCommentRepository struct {
	db *gorm.DB
}

func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

func (r *GormCommentRepository) Add(ctx context.Context, comment *order.Comment) error {
	dto := fromDomain(comment)
	if err := r.db.WithContext(ctx).Omit("Order").Create(&dto).Error; err != nil {
		return pgerrs.Map("comment", err)
	}
	comment.AssignID(dto.ID)
	return nil
}

func (r *GormCommentRepository) Get(ctx context.Context, orderID, commentID int64) (*order.Comment, error) {
	var dto CommentDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND order_id = ?", commentID, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("comment", strconv.FormatInt(commentID, 10))
		}
		return nil, err
	}
	return toDomain(dto), nil
}

func (r *GormCommentRepository) Update(ctx context.Context, comment *order.Comment) error {
	result := r.db.WithContext(ctx).
		Model(&CommentDTO{}).
		Where("id = ? AND order_id = ?", comment.ID(), comment.OrderID()).
		Updates(map[string]any{
			"comment":     comment.Text(),
			"is_internal": comment.IsInternal(),
			"updated_at":  comment.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("comment", strconv.FormatInt(comment.ID(), 10))
	}
	return nil
}

func (r *GormCommentRepository) Delete(ctx context.Context, orderID, commentID int64) error {
	result := r.db.WithContext(ctx).Delete(&CommentDTO{}, "id = ? AND order_id = ?", commentID, orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("comment", strconv.FormatInt(commentID, 10))
	}
	return nil
}
