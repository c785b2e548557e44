// Package core provides the purchase ledger domain model and the
// recalculation engine that derives loyalty totals from it.
//
// This file contains fixed-point amount handling. Prices and totals are
// held as integer cents, bonus points as integer hundredths of a point,
// so derived values survive store round-trips without float drift.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

type (
	// Money is a non-negative fixed-point currency amount in cents.
	Money struct {
		Cents int64
	}

	// Points is a loyalty bonus value in hundredths of a point.
	Points struct {
		Hundredths int64
	}
)

// ParseMoney converts a decimal string to Money with half-up rounding on
// the third decimal place. It accepts both dot (12.34) and comma (12,34)
// decimal separators. Zero is a valid amount; signs are rejected.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return Money{}, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
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
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Money{}, ErrInvalidAmount
	}
	// Take the first two fractional digits; half-up rounding on the third.
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
	return Money{Cents: iv*100 + fracCents}, nil
}

// CoerceMoney parses a decimal string, degrading malformed or missing
// input to zero. This is the permissive path used when normalizing
// ledger rows: bad upstream data becomes 0.00 instead of an error.
func CoerceMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		return Money{}
	}
	return m
}

// CoerceQuantity parses a quantity string, degrading malformed, missing
// or negative input to zero.
func CoerceQuantity(s string) int {
	q, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || q < 0 {
		return 0
	}
	return q
}

// MulInt returns the amount multiplied by a unit count.
func (m Money) MulInt(n int) Money {
	if n < 0 {
		n = 0
	}
	return Money{Cents: m.Cents * int64(n)}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{Cents: m.Cents + other.Cents}
}

// Float64 returns the amount in currency units for display purposes.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Float64() float64 {
	return float64(m.Cents) / 100.0
}

// String renders the amount as plain decimal text with two digits, the
// form used in the persisted table.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.Cents/100, m.Cents%100)
}

// Float64 returns the bonus value in points.
func (p Points) Float64() float64 {
	return float64(p.Hundredths) / 100.0
}

// String renders the bonus value as plain decimal text with two digits.
func (p Points) String() string {
	return fmt.Sprintf("%d.%02d", p.Hundredths/100, p.Hundredths%100)
}
