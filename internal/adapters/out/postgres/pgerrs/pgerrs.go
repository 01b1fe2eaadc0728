// Package pgerrs translates PostgreSQL driver errors into the engine's error
// kinds. Repositories pass every write error through Map.
package pgerrs

import (
	"errors"

	"procurement/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	uniqueViolation      = "23505"
	foreignKeyViolation  = "23503"
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
)

// Map returns err unchanged unless it is a constraint or concurrency failure
// the caller can act on:
//   - unique violations, serialization failures and deadlocks become
//     ConflictError (the transaction may be retried)
//   - foreign key violations become ValueIsInvalidError
func Map(resource string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errs.NewConflictErrorWithCause(resource, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case uniqueViolation, serializationFailure, deadlockDetected:
		return errs.NewConflictErrorWithCause(resource, err)
	case foreignKeyViolation:
		return errs.NewValueIsInvalidErrorWithCause(resource, err)
	default:
		return err
	}
}
