package accessrepo

import (
	"context"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/clock"

	"gorm.io/gorm"
)

const grantedPermissionsQuery = `
SELECT DISTINCT p.code
FROM user_roles ur
JOIN roles r ON r.id = ur.role_id AND r.is_active
JOIN role_permissions rp ON rp.role_id = ur.role_id
JOIN permissions p ON p.id = rp.permission_id
WHERE ur.user_id = ?
  AND (ur.expires_at IS NULL OR ur.expires_at > ?)`

// GormPermissionResolver implements ports.PermissionResolver. A user with no
// live role simply holds nothing.
type GormPermissionResolver struct {
	db  *gorm.DB
	clk clock.Clock
}

func NewGormPermissionResolver(db *gorm.DB, clk clock.Clock) *GormPermissionResolver {
	return &GormPermissionResolver{db: db, clk: clk}
}

func (r *GormPermissionResolver) HasPermission(ctx context.Context, userID int64, perm access.Permission) (bool, error) {
	var found int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(*) FROM (`+grantedPermissionsQuery+`) granted WHERE granted.code = ?`,
			userID, r.clk.Now().UTC(), perm.String()).
		Scan(&found).Error
	if err != nil {
		return false, err
	}
	return found > 0, nil
}

func (r *GormPermissionResolver) ResolvePrincipal(ctx context.Context, userID int64) (access.Principal, error) {
	var codes []string
	err := r.db.WithContext(ctx).
		Raw(grantedPermissionsQuery, userID, r.clk.Now().UTC()).
		Scan(&codes).Error
	if err != nil {
		return access.Principal{}, err
	}
	return access.NewPrincipal(userID, codes...)
}
