package workflowrepo

import (
	"context"

	"procurement/internal/adapters/out/postgres/pgerrs"
	"procurement/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormWorkflowRepository implements ports.WorkflowRepository. It only ever
// inserts and reads.
type GormWorkflowRepository struct {
	db *gorm.DB
}

func NewGormWorkflowRepository(db *gorm.DB) *GormWorkflowRepository {
	return &GormWorkflowRepository{db: db}
}

func (r *GormWorkflowRepository) Record(ctx context.Context, entry order.WorkflowEntry) (order.WorkflowEntry, error) {
	dto := fromDomain(entry)
	if err := r.db.WithContext(ctx).Omit("Order", "FromStatus", "ToStatus").Create(&dto).Error; err != nil {
		return order.WorkflowEntry{}, pgerrs.Map("workflow history", err)
	}
	return entry.WithID(dto.ID), nil
}

func (r *GormWorkflowRepository) ListByOrder(ctx context.Context, orderID int64) ([]order.WorkflowEntry, error) {
	var dtos []WorkflowEntryDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("changed_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]order.WorkflowEntry, 0, len(dtos))
	for _, dto := range dtos {
		entries = append(entries, toDomain(dto))
	}
	return entries, nil
}
