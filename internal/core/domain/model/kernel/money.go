package kernel

import (
	"fmt"
	"math"

	"orderflow/internal/pkg/errs"
)

// Money is a value object representing a USD amount stored as whole cents.
// It is immutable; arithmetic methods return new values. Amounts are never
// negative: order line prices and totals are magnitudes, and direction is
// carried by the operation (reserve, release, return) rather than the sign.
//
// Example usage:
//
//	price, err := kernel.NewMoneyFromCents(1250) // $12.50
//	if err != nil {
//	    // handle error
//	}
//	lineTotal := price.MulQty(3) // $37.50
type Money struct {
	cents int64
}

// NewMoneyFromCents creates a Money value from whole cents.
// Returns an error if cents is negative.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"money amount",
			fmt.Errorf("%d cents is negative", cents),
		)
	}
	return Money{cents: cents}, nil
}

// Cents returns the amount in whole cents.
func (m Money) Cents() int64 {
	return m.cents
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsEqual compares two Money values.
func (m Money) IsEqual(other Money) bool {
	return m.cents == other.cents
}

// Add returns the sum of two Money values.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// MulQty returns the amount multiplied by a quantity.
// Quantities are validated at the entity layer; negative input here is a
// programming error and is treated as zero.
func (m Money) MulQty(qty int) Money {
	if qty <= 0 {
		return Money{}
	}
	return Money{cents: m.cents * int64(qty)}
}

// ConvertUZS converts the USD amount into whole UZS using the given rate
// (UZS per one USD), rounding to the nearest som.
func (m Money) ConvertUZS(rate float64) int64 {
	return int64(math.Round(float64(m.cents) * rate / 100.0))
}

// String returns the amount formatted as a decimal dollar value, e.g. "12.50".
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}
