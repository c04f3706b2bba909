package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor currency units (cents for EUR/USD).
// Paybox encodes amounts as zero-padded integers, so the minor unit is
// the native representation; decimal major-unit amounts are converted at
// the boundary.
type Money int64

// NewMoney converts a major-unit decimal amount (e.g. 19.99) into minor
// units using the given currency exponent (2 for EUR/USD, 0 for JPY).
// Returns an error if the amount is negative or has more fractional
// digits than the exponent allows.
func NewMoney(amount decimal.Decimal, exponent int32) (Money, error) {
	if amount.IsNegative() {
		return 0, NewValidationError("MONTANT", "amount must not be negative")
	}
	scaled := amount.Shift(exponent)
	if !scaled.IsInteger() {
		return 0, NewValidationError("MONTANT", fmt.Sprintf("amount %s has more precision than exponent %d allows", amount, exponent))
	}
	return Money(scaled.IntPart()), nil
}

// Decimal returns the major-unit decimal value for the given currency
// exponent.
func (m Money) Decimal(exponent int32) decimal.Decimal {
	return decimal.New(int64(m), 0).Shift(-exponent)
}

// Valid reports whether the amount is usable on the wire.
func (m Money) Valid() bool {
	return m >= 0
}

func (m Money) String() string {
	return fmt.Sprintf("%d", int64(m))
}
