// Package outboxrepo stores order events next to the state change that
// produced them until the relay hands them to the broker.
package outboxrepo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type OutboxDTO struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AggregateID int64          `gorm:"index;not null"`
	EventType   string         `gorm:"size:100;not null"`
	Payload     datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time      `gorm:"index:idx_outbox_pending,priority:2;not null"`
	PublishedAt *time.Time     `gorm:"index:idx_outbox_pending,priority:1"`
	Attempts    int            `gorm:"not null;default:0"`
	LastError   *string        `gorm:"type:text"`
}

func (OutboxDTO) TableName() string {
	return "order_outbox"
}
