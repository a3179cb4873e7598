package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ParsePriceMinor converts a major-unit amount string (e.g. "1250.50") into
// minor units for the given ISO 4217 currency code. The currency's cash
// rounding scale decides how many decimal places are accepted: "10.5" is
// valid EUR input but invalid XAF input.
func ParsePriceMinor(amount, code string) (int64, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return 0, fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, code)
	}
	scale, _ := currency.Cash.Rounding(unit)

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed price %q", ErrInvalidInput, amount)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}

	minor := d.Shift(int32(scale))
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: price %q has more than %d decimal places for %s", ErrInvalidInput, amount, scale, unit)
	}
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: price %q out of range", ErrInvalidInput, amount)
	}
	return minor.IntPart(), nil
}

// FormatPriceMajor renders minor units as a major-unit string with the
// currency's full cash scale, e.g. 125050 EUR -> "1250.50".
func FormatPriceMajor(minor int64, code string) (string, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: unknown currency %q", ErrInvalidInput, code)
	}
	scale, _ := currency.Cash.Rounding(unit)
	return decimal.New(minor, -int32(scale)).StringFixed(int32(scale)), nil
}
