package validate

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Name trims s and reports whether anything is left.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Prices outside [MinPrice, MaxPrice] cannot be stored or shown as money.
var (
	MinPrice = decimal.New(1, -2)
	MaxPrice = decimal.New(1, 9)
)

// Price parses a decimal price and requires it to be within range.
func Price(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || !PriceInRange(d) {
		return decimal.Zero, false
	}
	return d, true
}

// PriceInRange reports whether d lies in [MinPrice, MaxPrice].
func PriceInRange(d decimal.Decimal) bool {
	if !d.IsPositive() {
		return false
	}
	// Count integer digits before comparing; Cmp rescales and would expand extreme exponents.
	if mag := d.NumDigits() + int(d.Exponent()); mag > 10 || mag < -1 {
		return false
	}
	return d.GreaterThanOrEqual(MinPrice) && d.LessThanOrEqual(MaxPrice)
}

// ID validates a positive integer resource identifier.
func ID(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// OptionalInt returns nil for blank or non-numeric input.
func OptionalInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// OptionalString returns nil for blank input.
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
