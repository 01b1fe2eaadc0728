// Package workflowrepo persists the append-only status history of orders.
package workflowrepo

import (
	"time"

	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/adapters/out/postgres/referencerepo"
	"procurement/internal/core/domain/model/order"

	"gorm.io/datatypes"
)

type WorkflowEntryDTO struct {
	ID           int64          `gorm:"primaryKey"`
	OrderID      int64          `gorm:"index:idx_workflow_order_changed,priority:1;not null"`
	FromStatusID *int64         `gorm:"index"`
	ToStatusID   int64          `gorm:"not null"`
	ChangedBy    int64          `gorm:"not null"`
	ChangedAt    time.Time      `gorm:"index:idx_workflow_order_changed,priority:2;not null"`
	Comments     *string        `gorm:"type:text"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`

	Order      *orderrepo.OrderDTO           `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	FromStatus *referencerepo.OrderStatusDTO `gorm:"foreignKey:FromStatusID"`
	ToStatus   *referencerepo.OrderStatusDTO `gorm:"foreignKey:ToStatusID"`
}

func (WorkflowEntryDTO) TableName() string {
	return "order_workflow_history"
}

func fromDomain(e order.WorkflowEntry) WorkflowEntryDTO {
	var from *int64
	if e.From() != nil {
		id := int64(*e.From())
		from = &id
	}

	return WorkflowEntryDTO{
		ID:           e.ID(),
		OrderID:      e.OrderID(),
		FromStatusID: from,
		ToStatusID:   int64(e.To()),
		ChangedBy:    e.ChangedBy(),
		ChangedAt:    e.ChangedAt(),
		Comments:     e.Comments(),
		Metadata:     datatypes.JSON(e.Metadata()),
	}
}

func toDomain(dto WorkflowEntryDTO) order.WorkflowEntry {
	var from *order.Status
	if dto.FromStatusID != nil {
		s := order.Status(*dto.FromStatusID)
		from = &s
	}

	var metadata []byte
	if len(dto.Metadata) > 0 {
		metadata = []byte(dto.Metadata)
	}

	return order.RestoreWorkflowEntry(
		dto.ID, dto.OrderID, from, order.Status(dto.ToStatusID),
		dto.ChangedBy, dto.ChangedAt, dto.Comments, metadata,
	)
}
