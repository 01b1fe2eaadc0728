package ports

import "context"

// ReferenceRepository answers existence questions about administrator-managed
// reference data. The engine never writes it.
type ReferenceRepository interface {
	// OrderTypeIsActive reports whether the order type exists and is active.
	OrderTypeIsActive(ctx context.Context, id int64) (bool, error)

	// DepartmentExists reports whether the department exists.
	DepartmentExists(ctx context.Context, id int64) (bool, error)
}
