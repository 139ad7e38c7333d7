package normalize

import (
	"errors"
	"fmt"

	"github.com/gregtusar/paper-dashboard/pkg/alpaca"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingValue  = errors.New("missing value")
	ErrInvalidNumber = errors.New("invalid number")
)

var hundred = decimal.NewFromInt(100)

// toDecimal coerces a required wire number.
func toDecimal(field string, n alpaca.Number) (decimal.Decimal, error) {
	if n.IsZero() {
		return decimal.Zero, fmt.Errorf("%s: %w", field, ErrMissingValue)
	}
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s %q: %w", field, n, ErrInvalidNumber)
	}
	return d, nil
}

// toNullDecimal coerces an optional wire number; null stays null.
func toNullDecimal(field string, n alpaca.Number) (decimal.NullDecimal, error) {
	if n.IsZero() {
		return decimal.NullDecimal{}, nil
	}
	d, err := toDecimal(field, n)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}
