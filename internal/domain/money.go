package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an immutable amount in minor units (cents). All wallet arithmetic
// runs on integers to avoid floating-point drift.
type Money struct {
	cents int64
}

// NewMoney builds a Money from minor units.
func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, NewInvalidAmountError(cents)
	}
	return Money{cents: cents}, nil
}

// Zero returns a zero-valued Money.
func Zero() Money {
	return Money{}
}

// MoneyFromDecimal parses a decimal representation such as "100.50" or
// "R$ 1.234,00"-style garbage input: every character except digits, a dot and
// a leading minus is stripped before parsing. The result is rounded
// half-away-from-zero to the nearest cent.
func MoneyFromDecimal(value string) (Money, error) {
	cleaned := stripNonNumeric(value)
	if cleaned == "" {
		return Money{}, NewInvalidAmountError(0)
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, NewInvalidAmountError(0)
	}

	cents := d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return NewMoney(cents)
}

// MoneyFromFloat converts a floating amount of major units to Money,
// rounding half-away-from-zero to the nearest cent.
func MoneyFromFloat(value float64) (Money, error) {
	cents := decimal.NewFromFloat(value).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	return NewMoney(cents)
}

func stripNonNumeric(value string) string {
	value = strings.TrimSpace(value)
	var b strings.Builder
	for i, r := range value {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns a new Money holding the sum.
func (m Money) Add(other Money) (Money, error) {
	return NewMoney(m.cents + other.cents)
}

// Subtract returns a new Money holding the difference. A negative result is
// rejected at construction.
func (m Money) Subtract(other Money) (Money, error) {
	return NewMoney(m.cents - other.cents)
}

func (m Money) IsGreaterOrEqual(other Money) bool {
	return m.cents >= other.cents
}

func (m Money) IsZero() bool {
	return m.cents == 0
}

// ToDecimal formats the amount with exactly two fractional digits.
func (m Money) ToDecimal() string {
	return decimal.New(m.cents, -2).StringFixed(2)
}

func (m Money) String() string {
	return m.ToDecimal()
}
