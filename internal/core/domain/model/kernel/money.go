package kernel

import (
	"fmt"
	"strings"

	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Currency is an upper-case ISO 4217 alphabetic code.
type Currency string

// DefaultCurrency is assigned to orders that do not name one.
const DefaultCurrency Currency = "GEL"

const currencyCodeLength = 3

// NewCurrency normalises code (trimmed, upper-cased). An empty code yields
// DefaultCurrency; anything that is not three latin letters is rejected.
func NewCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency, nil
	}

	if len(code) != currencyCodeLength {
		return "", errs.NewValueIsInvalidErrorWithCause(
			"currency",
			fmt.Errorf("%q is not a %d letter code", code, currencyCodeLength),
		)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", errs.NewValueIsInvalidErrorWithCause("currency", fmt.Errorf("%q contains %q", code, r))
		}
	}

	return Currency(code), nil
}

func (c Currency) String() string {
	return string(c)
}

// ValidateAmount rejects negative monetary amounts. A nil amount is valid:
// every amount in the domain is optional.
func ValidateAmount(paramName string, amount *decimal.Decimal) error {
	if amount == nil {
		return nil
	}
	if amount.IsNegative() {
		return errs.NewValueIsOutOfRangeError(paramName, amount.String(), 0, "unbounded")
	}
	return nil
}
