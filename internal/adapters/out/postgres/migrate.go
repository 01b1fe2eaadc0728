package postgres

import (
	"context"
	"fmt"

	"procurement/internal/adapters/out/postgres/accessrepo"
	"procurement/internal/adapters/out/postgres/commentrepo"
	"procurement/internal/adapters/out/postgres/documentrepo"
	"procurement/internal/adapters/out/postgres/orderrepo"
	"procurement/internal/adapters/out/postgres/outboxrepo"
	"procurement/internal/adapters/out/postgres/referencerepo"
	"procurement/internal/adapters/out/postgres/workflowrepo"

	"gorm.io/gorm"
)

// Models lists every table of the engine, referenced tables first.
func Models() []any {
	return []any{
		&referencerepo.OrderStatusDTO{},
		&referencerepo.OrderTypeDTO{},
		&referencerepo.DepartmentDTO{},
		&accessrepo.RoleDTO{},
		&accessrepo.PermissionDTO{},
		&accessrepo.RolePermissionDTO{},
		&accessrepo.UserDTO{},
		&accessrepo.UserRoleDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&workflowrepo.WorkflowEntryDTO{},
		&commentrepo.CommentDTO{},
		&documentrepo.DocumentDTO{},
		&outboxrepo.OutboxDTO{},
	}
}

// Migrate creates or alters the schema and seeds the status vocabulary.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	if err := referencerepo.SeedStatuses(ctx, db); err != nil {
		return fmt.Errorf("seed order statuses: %w", err)
	}
	return nil
}
