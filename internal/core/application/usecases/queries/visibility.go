package queries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/core/domain/services"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// visibility renders services.OrderPolicy as SQL for queries that read
// orders in bulk.
type visibility struct {
	policy services.OrderPolicy
}

func newVisibility() visibility {
	return visibility{policy: services.NewOrderPolicy()}
}

// where returns a condition on the orders alias o and its arguments. Callers
// append it with AND.
func (v visibility) where(p access.Principal) (string, []any) {
	if v.policy.SeesAll(p) {
		return "TRUE", nil
	}
	return "(o.requester_id = ? OR o.created_by = ?)", []any{p.UserID(), p.UserID()}
}

// authorize reports NotFound for a missing order and PermissionDenied for an
// order the principal may not see.
func (v visibility) authorize(ctx context.Context, db *gorm.DB, p access.Principal, orderID int64) error {
	var owner struct {
		RequesterID int64
		CreatedBy   sql.NullInt64
	}
	err := db.WithContext(ctx).
		Raw(`SELECT requester_id, created_by FROM orders WHERE id = ?`, orderID).
		Row().
		Scan(&owner.RequesterID, &owner.CreatedBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return errs.NewObjectNotFoundError("order", strconv.FormatInt(orderID, 10))
		}
		return err
	}

	if v.policy.SeesAll(p) || owner.RequesterID == p.UserID() ||
		(owner.CreatedBy.Valid && owner.CreatedBy.Int64 == p.UserID()) {
		return nil
	}
	return errs.NewPermissionDeniedError(fmt.Sprintf("view order %d", orderID))
}

func decimalPtr(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}
