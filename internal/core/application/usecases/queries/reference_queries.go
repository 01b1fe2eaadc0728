package queries

import (
	"errors"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/guard"
)

var (
	ErrListOrderStatusesQueryIsNotConstructed = errors.New(
		"ListOrderStatusesQuery must be created via NewListOrderStatusesQuery constructor",
	)
	ErrListOrderTypesQueryIsNotConstructed = errors.New(
		"ListOrderTypesQuery must be created via NewListOrderTypesQuery constructor",
	)
)

// ListOrderStatusesQuery reads the active status vocabulary in display order.
// Any authenticated principal may run it.
type ListOrderStatusesQuery struct {
	principal access.Principal
	guard     guard.ConstructorGuard
}

func NewListOrderStatusesQuery(principal access.Principal) (ListOrderStatusesQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListOrderStatusesQuery{}, err
	}
	return ListOrderStatusesQuery{principal: principal, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrderStatusesQuery) Validate() error {
	return q.guard.Validate(ErrListOrderStatusesQueryIsNotConstructed)
}

// ListOrderTypesQuery reads the active order types by name.
type ListOrderTypesQuery struct {
	principal access.Principal
	guard     guard.ConstructorGuard
}

func NewListOrderTypesQuery(principal access.Principal) (ListOrderTypesQuery, error) {
	if err := principal.Validate(); err != nil {
		return ListOrderTypesQuery{}, err
	}
	return ListOrderTypesQuery{principal: principal, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOrderTypesQuery) Validate() error {
	return q.guard.Validate(ErrListOrderTypesQueryIsNotConstructed)
}
