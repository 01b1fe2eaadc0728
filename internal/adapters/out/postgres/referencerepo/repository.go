package referencerepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormReferenceRepository implements ports.ReferenceRepository using GORM.
type GormReferenceRepository struct {
	db *gorm.DB
}

func NewGormReferenceRepository(db *gorm.DB) *GormReferenceRepository {
	return &GormReferenceRepository{db: db}
}

func (r *GormReferenceRepository) OrderTypeIsActive(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderTypeDTO{}).
		Where("id = ? AND is_active", id).
		Count(&count).Error
	return count > 0, err
}

func (r *GormReferenceRepository) DepartmentExists(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&DepartmentDTO{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

// SeedStatuses inserts the status vocabulary, leaving rows that already exist
// (and any administrator edits to their names) alone.
func SeedStatuses(ctx context.Context, db *gorm.DB) error {
	rows := StatusCatalog()
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(&rows).Error
}
