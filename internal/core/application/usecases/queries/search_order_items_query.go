package queries

import (
	"errors"
	"strings"
	"unicode/utf8"

	"procurement/internal/core/domain/model/access"
	"procurement/internal/pkg/guard"
)

const (
	// MinItemSearchLength is the shortest term that is actually searched.
	MinItemSearchLength = 2
	// ItemSearchLimit caps the number of results.
	ItemSearchLimit = 50
)

var (
	ErrSearchOrderItemsQueryIsNotConstructed = errors.New(
		"SearchOrderItemsQuery must be created via NewSearchOrderItemsQuery constructor",
	)
)

// SearchOrderItemsQuery finds items of earlier orders by name. Terms shorter
// than MinItemSearchLength after trimming yield no results rather than an
// error, so clients can search as the user types.
type SearchOrderItemsQuery struct {
	principal access.Principal
	term      string

	guard guard.ConstructorGuard
}

func NewSearchOrderItemsQuery(principal access.Principal, term string) (SearchOrderItemsQuery, error) {
	if err := principal.Validate(); err != nil {
		return SearchOrderItemsQuery{}, err
	}
	return SearchOrderItemsQuery{
		principal: principal,
		term:      strings.TrimSpace(term),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q SearchOrderItemsQuery) Validate() error {
	return q.guard.Validate(ErrSearchOrderItemsQueryIsNotConstructed)
}

func (q SearchOrderItemsQuery) Principal() access.Principal { return q.principal }
func (q SearchOrderItemsQuery) Term() string                { return q.term }

// IsSearchable reports whether the term is long enough to run.
func (q SearchOrderItemsQuery) IsSearchable() bool {
	return utf8.RuneCountInString(q.term) >= MinItemSearchLength
}
