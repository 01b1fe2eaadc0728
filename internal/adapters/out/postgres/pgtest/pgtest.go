// Package pgtest starts a disposable PostgreSQL for integration suites and
// prepares the engine's schema and fixtures in it.
package pgtest

import (
	"context"
	"time"

	postgres_adapter "procurement/internal/adapters/out/postgres"
	"procurement/internal/adapters/out/postgres/referencerepo"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Fixture ids seeded by Seed.
const (
	ActiveOrderTypeID   int64 = 2
	InactiveOrderTypeID int64 = 3
	DepartmentID        int64 = 5
)

// Database is a migrated database in a container.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine, connects GORM to it and migrates the schema.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = postgres_adapter.Migrate(ctx, db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}
	if err = Seed(ctx, db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Seed inserts the reference rows the suites rely on.
func Seed(ctx context.Context, db *gorm.DB) error {
	types := []referencerepo.OrderTypeDTO{
		{ID: ActiveOrderTypeID, Code: "equipment", Name: "Equipment", IsActive: true},
		{ID: InactiveOrderTypeID, Code: "legacy", Name: "Legacy", IsActive: false},
	}
	if err := db.WithContext(ctx).Create(&types).Error; err != nil {
		return err
	}
	// GORM skips zero values on insert, so the inactive flag needs a second write.
	if err := db.WithContext(ctx).Model(&referencerepo.OrderTypeDTO{}).
		Where("id = ?", InactiveOrderTypeID).Update("is_active", false).Error; err != nil {
		return err
	}

	return db.WithContext(ctx).Create(&referencerepo.DepartmentDTO{ID: DepartmentID, Name: "Finance", IsActive: true}).Error
}

// Truncate empties the order tables and the access tables, keeping reference data.
func (d *Database) Truncate(ctx context.Context) error {
	return d.DB.WithContext(ctx).
		Exec("TRUNCATE TABLE orders, order_outbox, user_roles, app_users, role_permissions, permissions, roles RESTART IDENTITY CASCADE").Error
}

// Terminate stops the container.
func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
