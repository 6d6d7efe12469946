// Package money handles the decimal amounts stored as NUMERIC(14,2). Amounts
// travel as strings on the wire and are never converted through float64.
package money

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const Scale = 2

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrTooManyDecimals = errors.New("amount has too many decimal places")
	ErrNegativeAmount  = errors.New("amount must not be negative")
)

// Parse accepts a decimal string, a json.Number or an integer and returns
// the amount with at most two decimal places.
func Parse(value any) (decimal.Decimal, error) {
	var raw string
	switch v := value.(type) {
	case nil:
		return decimal.Zero, ErrInvalidAmount
	case string:
		raw = strings.TrimSpace(v)
	case json.Number:
		raw = v.String()
	case []byte:
		raw = string(v)
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case decimal.Decimal:
		raw = v.String()
	default:
		raw = fmt.Sprint(v)
	}
	if raw == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if amount.Exponent() < -Scale && !amount.Equal(amount.Round(Scale)) {
		return decimal.Zero, ErrTooManyDecimals
	}
	return amount, nil
}

// ParseNonNegative is Parse plus a sign check; ledger amounts, salaries and
// prices are never negative.
func ParseNonNegative(value any) (decimal.Decimal, error) {
	amount, err := Parse(value)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, ErrNegativeAmount
	}
	return amount, nil
}

func Format(amount decimal.Decimal) string {
	return amount.StringFixed(Scale)
}

// Percent returns pct percent of amount rounded half-up to cents.
func Percent(amount decimal.Decimal, pct int64) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(pct)).Div(decimal.NewFromInt(100)).Round(Scale)
}

// Sum adds decimal strings, skipping blanks. Any malformed value fails the
// whole sum.
func Sum(values ...string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		amount, err := Parse(value)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(amount)
	}
	return total, nil
}
