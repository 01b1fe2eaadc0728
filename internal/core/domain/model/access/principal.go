package access

import (
	"errors"

	"procurement/internal/pkg/errs"
)

// ErrPrincipalIsNotConstructed guards against zero-value principals reaching
// the engine, which would read as "user 0 with no permissions".
var ErrPrincipalIsNotConstructed = errors.New("Principal must be created via NewPrincipal constructor")

// Principal is an authenticated caller: a user id and the permission codes
// resolved for it. It is passed explicitly into every command and query.
type Principal struct {
	userID      int64
	permissions map[Permission]struct{}
}

// NewPrincipal builds a principal from resolved permission codes. Codes the
// engine does not know are kept; they simply never match a check.
func NewPrincipal(userID int64, codes ...string) (Principal, error) {
	if userID <= 0 {
		return Principal{}, errs.NewValueIsRequiredError("user id")
	}

	perms := make(map[Permission]struct{}, len(codes))
	for _, code := range codes {
		perms[Permission(code)] = struct{}{}
	}
	return Principal{userID: userID, permissions: perms}, nil
}

// MustNewPrincipal is NewPrincipal for tests and fixtures.
func MustNewPrincipal(userID int64, perms ...Permission) Principal {
	codes := make([]string, 0, len(perms))
	for _, p := range perms {
		codes = append(codes, p.String())
	}
	p, err := NewPrincipal(userID, codes...)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Principal) UserID() int64 {
	return p.userID
}

// Has reports whether the principal holds perm.
func (p Principal) Has(perm Permission) bool {
	_, ok := p.permissions[perm]
	return ok
}

// Require returns a PermissionDeniedError naming perm when it is missing.
func (p Principal) Require(perm Permission) error {
	if !p.Has(perm) {
		return errs.NewPermissionDeniedError(perm.String())
	}
	return nil
}

// Permissions returns the held codes in no particular order.
func (p Principal) Permissions() []Permission {
	out := make([]Permission, 0, len(p.permissions))
	for perm := range p.permissions {
		out = append(out, perm)
	}
	return out
}

func (p Principal) Validate() error {
	if p.userID <= 0 {
		return ErrPrincipalIsNotConstructed
	}
	return nil
}
