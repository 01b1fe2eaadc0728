package order

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"procurement/internal/pkg/errs"
)

const (
	numberPrefix         = "ORD-"
	minSequenceDigits    = 4
	numberPrefixDateForm = "200601"
)

var numberPattern = regexp.MustCompile(`^ORD-\d{6}\d{4,}$`)

// Number is the human-readable order identifier ORD-{yyyy}{mm}{seq}. The
// sequence restarts at 1 every calendar month and is zero padded to four
// digits; the 10000th order of a month simply gets a five digit suffix.
//
// A Number is assigned once, at creation, and never changes.
type Number struct {
	value string
}

// NumberPrefix returns the month prefix shared by every number allocated in
// the calendar month (UTC) of at, e.g. "ORD-202610".
func NumberPrefix(at time.Time) string {
	return numberPrefix + at.UTC().Format(numberPrefixDateForm)
}

// NewNumber builds the number for the given month and sequence (starting at 1).
func NewNumber(at time.Time, sequence int) (Number, error) {
	if sequence < 1 {
		return Number{}, errs.NewValueIsOutOfRangeError("sequence", sequence, 1, "unbounded")
	}
	return Number{value: fmt.Sprintf("%s%0*d", NumberPrefix(at), minSequenceDigits, sequence)}, nil
}

// ParseNumber restores a persisted number.
func ParseNumber(value string) (Number, error) {
	if !numberPattern.MatchString(value) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"order number",
			fmt.Errorf("%q does not match ORD-yyyymm0000", value),
		)
	}
	return Number{value: value}, nil
}

// SequenceOf extracts the monthly sequence from a number carrying prefix.
func SequenceOf(value, prefix string) (int, bool) {
	suffix, ok := strings.CutPrefix(value, prefix)
	if !ok || len(suffix) < minSequenceDigits {
		return 0, false
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq < 1 {
		return 0, false
	}
	return seq, true
}

func (n Number) String() string {
	return n.value
}

func (n Number) IsEqual(other Number) bool {
	return n.value == other.value
}

// Validate rejects the zero Number.
func (n Number) Validate() error {
	if n.value == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	return nil
}
