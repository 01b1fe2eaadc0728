package accessrepo

import (
	"context"

	"procurement/internal/pkg/clock"
	"procurement/internal/pkg/errs"

	"gorm.io/gorm"
)

// ApproverRoleName is the role whose members are mailed about new orders.
const ApproverRoleName = "approver"

const approverEmailsQuery = `
SELECT DISTINCT u.email
FROM app_users u
JOIN user_roles ur ON ur.user_id = u.id
JOIN roles r ON r.id = ur.role_id AND r.is_active
WHERE LOWER(r.name) = ?
  AND u.is_active
  AND u.email <> ''
  AND (ur.expires_at IS NULL OR ur.expires_at > ?)
ORDER BY u.email`

// GormApproverDirectory implements ports.ApproverDirectory over the role graph.
type GormApproverDirectory struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewGormApproverDirectory(db *gorm.DB, clk clock.Clock) *GormApproverDirectory {
	return &GormApproverDirectory{db: db, clk: clk}
}

func (d *GormApproverDirectory) ApproverEmails(ctx context.Context) ([]string, error) {
	var emails []string
	err := d.db.WithContext(ctx).
		Raw(approverEmailsQuery, ApproverRoleName, d.clk.Now().UTC()).
		Scan(&emails).Error
	if err != nil {
		return nil, errs.NewDependencyUnavailableError("approver directory", err)
	}
	return emails, nil
}
