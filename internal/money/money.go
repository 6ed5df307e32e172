package money

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNotPositive   = errors.New("amount must be positive")
	ErrTooManyDigits = errors.New("amount has too many decimal places")
)

const maxScale = 2

// ParsePositive parses a user-supplied amount. Amounts entering the ledger
// are always positive; only remains may go below zero.
func ParsePositive(input string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	value, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if value.Exponent() < -maxScale {
		return decimal.Zero, ErrTooManyDigits
	}
	if !value.IsPositive() {
		return decimal.Zero, ErrNotPositive
	}
	return value, nil
}

func Format(value decimal.Decimal) string {
	return value.StringFixed(maxScale)
}
