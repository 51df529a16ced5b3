// Package core holds the domain model shared by the budget engine:
// signed fixed-point money, calendar dates, transactions, category specs
// and the batch error taxonomy.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Money is a signed fixed-point amount with two-decimal precision.
// Negative cents are outflows. All arithmetic stays in cents to avoid
// floating-point drift.
type Money struct {
	Cents int64
}

// ParseDecimalToCents converts a signed decimal string to cents with
// half-up rounding on the third decimal place. Both dot (12.34) and comma
// (12,34) separators are accepted.
//
// Examples:
//
//	ParseDecimalToCents("12.34")  -> 1234, nil
//	ParseDecimalToCents("-50")    -> -5000, nil
//	ParseDecimalToCents("1.005")  -> 101, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty amount")
	}
	s = strings.ReplaceAll(s, ",", ".")

	negative := false
	switch {
	case strings.HasPrefix(s, "-"):
		negative = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, fmt.Errorf("invalid amount %q", s)
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, fmt.Errorf("amount overflow %q", s)
	}

	// First two fractional digits, half-up rounding on the third.
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if negative {
		cents = -cents
	}
	return cents, nil
}

// NewMoney builds a Money from whole units and cents, e.g. NewMoney(-50, 0).
func NewMoney(units, cents int64) Money {
	return Money{Cents: units*100 + cents}
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Sub returns m - other.
func (m Money) Sub(other Money) Money {
	return Money{Cents: m.Cents - other.Cents}
}

// Neg returns -m.
func (m Money) Neg() Money {
	return Money{Cents: -m.Cents}
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// DivideEven splits m into n equal parts, distributing the remainder cents
// over the first parts so the sum of the parts equals m exactly.
func (m Money) DivideEven(n int) []Money {
	if n <= 0 {
		return nil
	}
	base := m.Cents / int64(n)
	rem := m.Cents - base*int64(n)
	parts := make([]Money, n)
	for i := range parts {
		parts[i] = Money{Cents: base}
	}
	// Remainder cents go onto the leading parts, one at a time.
	step := int64(1)
	if rem < 0 {
		step = -1
		rem = -rem
	}
	for i := int64(0); i < rem; i++ {
		parts[i].Cents += step
	}
	return parts
}

// Units returns the whole-unit value as float64, for display only.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}

// String formats m as a plain signed decimal, e.g. "-50.00".
func (m Money) String() string {
	sign := ""
	c := m.Cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}
