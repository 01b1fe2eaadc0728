package documentrepo

import (
	"context"
	"errors"
	"strconv"

	"procurement/internal/adapters/out/postgres/pgerrs"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDocumentRepository implements ports.DocumentRepository.
type GormDocumentRepository struct {
	db *gorm.DB
}

func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

func (r *GormDocumentRepository) Add(ctx context.Context, document *order.Document) error {
	dto := fromDomain(document)
	if err := r.db.WithContext(ctx).Omit("Order").Create(&dto).Error; err != nil {
		return pgerrs.Map("document", err)
	}
	document.AssignID(dto.ID)
	return nil
}

func (r *GormDocumentRepository) Get(ctx context.Context, orderID, documentID int64) (*order.Document, error) {
	var dto DocumentDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ? AND order_id = ?", documentID, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("document", strconv.FormatInt(documentID, 10))
		}
		return nil, err
	}
	return toDomain(dto), nil
}

func (r *GormDocumentRepository) Update(ctx context.Context, document *order.Document) error {
	result := r.db.WithContext(ctx).
		Model(&DocumentDTO{}).
		Where("id = ? AND order_id = ?", document.ID(), document.OrderID()).
		Updates(map[string]any{
			"description": document.Description(),
			"updated_at":  document.UpdatedAt(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("document", strconv.FormatInt(document.ID(), 10))
	}
	return nil
}

func (r *GormDocumentRepository) Delete(ctx context.Context, orderID, documentID int64) error {
	result := r.db.WithContext(ctx).Delete(&DocumentDTO{}, "id = ? AND order_id = ?", documentID, orderID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("document", strconv.FormatInt(documentID, 10))
	}
	return nil
}

func (r *GormDocumentRepository) ListByOrder(ctx context.Context, orderID int64) ([]*order.Document, error) {
	var dtos []DocumentDTO
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("uploaded_at DESC, id DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	documents := make([]*order.Document, 0, len(dtos))
	for _, dto := range dtos {
		documents = append(documents, toDomain(dto))
	}
	return documents, nil
}
