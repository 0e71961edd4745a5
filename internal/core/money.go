// Package core holds the domain model shared by every other package: dates,
// money, income streams, expense schedules and transactions.
package core

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for unparseable or negative amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// Money is an amount in cents. Arithmetic stays in integer cents; decimal is
// used only at the parse/format/scale boundary.
type Money struct {
	Cents int64
}

var cents = decimal.NewFromInt(100)

// ParseMoney converts a decimal string to Money with half-up rounding on the
// third decimal place. Both dot and comma separators are accepted. Negative
// amounts are rejected; zero is allowed.
func ParseMoney(s string) (Money, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.IsNegative() {
		return Money{}, ErrInvalidAmount
	}
	return Money{Cents: d.Mul(cents).Round(0).IntPart()}, nil
}

// Scale multiplies the amount by a decimal factor, rounding to whole cents.
func (m Money) Scale(factor decimal.Decimal) Money {
	return Money{Cents: decimal.NewFromInt(m.Cents).Mul(factor).Round(0).IntPart()}
}

// Div divides the amount by n, rounding to whole cents.
func (m Money) Div(n int64) Money {
	return Money{Cents: decimal.NewFromInt(m.Cents).DivRound(decimal.NewFromInt(n), 0).IntPart()}
}

// Mul multiplies the amount by an integer count.
func (m Money) Mul(n int) Money {
	return Money{Cents: m.Cents * int64(n)}
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Sub returns the difference of two amounts. The result may be negative.
func (m Money) Sub(o Money) Money {
	return Money{Cents: m.Cents - o.Cents}
}

// String formats the amount as a plain decimal, e.g. "1234.50".
func (m Money) String() string {
	return decimal.NewFromInt(m.Cents).Div(cents).StringFixed(2)
}

// Validate rejects negative amounts.
func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
