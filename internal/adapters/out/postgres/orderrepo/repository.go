package orderrepo

import (
	"context"
	"errors"
	"strconv"

	"procurement/internal/adapters/out/postgres/pgerrs"
	"procurement/internal/core/domain/model/order"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a repository bound to db, which is usually
// the transaction of a unit of work.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts the order and its items and assigns their identities.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version = 1
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerrs.Map("order number "+dto.OrderNumber, err)
	}

	for i, item := range aggregate.Items() {
		item.AssignID(dto.Items[i].ID)
	}
	aggregate.Persisted(dto.ID, dto.Version)
	return nil
}

// Update writes descriptive fields and status when the stored version still
// matches, and bumps the version.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(map[string]any{
			"order_type_id":    dto.OrderTypeID,
			"status_id":        dto.StatusID,
			"department_id":    dto.DepartmentID,
			"title":            dto.Title,
			"description":      dto.Description,
			"priority":         dto.Priority,
			"estimated_amount": dto.EstimatedAmount,
			"currency":         dto.Currency,
			"requested_date":   dto.RequestedDate,
			"required_by_date": dto.RequiredByDate,
			"approved_date":    dto.ApprovedDate,
			"completed_date":   dto.CompletedDate,
			"updated_at":       dto.UpdatedAt,
			"version":          gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return pgerrs.Map("order "+strconv.FormatInt(dto.ID, 10), result.Error)
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("order", strconv.FormatInt(dto.ID, 10))
		}
		return errs.NewConflictError("order " + strconv.FormatInt(dto.ID, 10) + " was changed concurrently")
	}

	aggregate.Persisted(dto.ID, dto.Version+1)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate locks the orders row with SELECT ... FOR UPDATE until the
// surrounding transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id int64) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(ctx context.Context, query *gorm.DB, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := query.First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", strconv.FormatInt(id, 10))
		}
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Order("id").Find(&dto.Items).Error; err != nil {
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes the order; the database cascades to its children.
func (r *GormOrderRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id)
	if result.Error != nil {
		return pgerrs.Map("order "+strconv.FormatInt(id, 10), result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", strconv.FormatInt(id, 10))
	}
	return nil
}

// NextNumberSequence takes a transaction-scoped advisory lock on the prefix
// and returns one more than the highest sequence in use. Suffixes are ordered
// by length first so that 10000 sorts after 9999.
func (r *GormOrderRepository) NextNumberSequence(ctx context.Context, prefix string) (int, error) {
	db := r.db.WithContext(ctx)
	if err := db.Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix).Error; err != nil {
		return 0, err
	}

	var numbers []string
	err := db.Model(&OrderDTO{}).
		Where("order_number LIKE ?", prefix+"%").
		Order("length(order_number) DESC, order_number DESC").
		Limit(1).
		Pluck("order_number", &numbers).Error
	if err != nil {
		return 0, err
	}

	if len(numbers) == 0 {
		return 1, nil
	}
	last, ok := order.SequenceOf(numbers[0], prefix)
	if !ok {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"order number",
			errors.New("stored number "+numbers[0]+" does not match prefix "+prefix),
		)
	}
	return last + 1, nil
}
