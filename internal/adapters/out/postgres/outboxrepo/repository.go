package outboxrepo

import (
	"context"
	"fmt"
	"time"

	"procurement/internal/adapters/out/events"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/core/ports"
	"procurement/internal/pkg/errs"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxErrorLength = 1000

// GormOutboxRepository implements ports.OutboxRepository.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Add(ctx context.Context, event order.CreatedEvent) error {
	payload, err := events.EncodeOrderCreated(event)
	if err != nil {
		return err
	}

	dto := OutboxDTO{
		ID:          event.EventID.Bytes(),
		AggregateID: event.OrderID,
		EventType:   order.CreatedEventType,
		Payload:     datatypes.JSON(payload),
		CreatedAt:   event.OccurredAt,
	}
	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListPending locks the returned rows until the transaction ends; rows held
// by another relay are skipped rather than waited for.
func (r *GormOutboxRepository) ListPending(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("published_at IS NULL").
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		event, err := events.DecodeOrderCreated(dto.Payload)
		if err != nil {
			return nil, fmt.Errorf("outbox message %s: %w", dto.ID, err)
		}
		id, err := kernel.UUIDFromString(dto.ID.String())
		if err != nil {
			return nil, err
		}
		messages = append(messages, ports.OutboxMessage{ID: id, Event: event, Attempts: dto.Attempts})
	}
	return messages, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, id kernel.UUID, at time.Time) error {
	at = at.UTC()
	result := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id = ?", id.Bytes()).
		Update("published_at", &at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}
	return nil
}

func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, reason string) error {
	if len(reason) > maxErrorLength {
		reason = reason[:maxErrorLength]
	}

	result := r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"last_error": reason,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("outbox message", id.String())
	}
	return nil
}
