package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParsePriceCents parses a display price like "$29.99" into integer cents.
// It tolerates a missing "$" prefix and thousands separators ("$1,299.00").
// Returns false when the remainder is not a number; callers decide whether
// that is a hard failure (validation) or a soft zero (calculations).
func ParsePriceCents(price string) (int64, bool) {
	s := strings.TrimSpace(price)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}

	return int64(math.Round(f * 100)), true
}

// FormatUSD formats an integer amount in cents as a string like "$29.99".
// Always renders exactly two decimal places.
func FormatUSD(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}

	dollars := cents / 100
	rem := cents % 100

	var b strings.Builder
	b.Grow(len(strconv.FormatInt(dollars, 10)) + 5)
	if neg {
		b.WriteString("-$")
	} else {
		b.WriteString("$")
	}
	b.WriteString(strconv.FormatInt(dollars, 10))
	b.WriteByte('.')
	if rem < 10 {
		b.WriteByte('0')
	}
	b.WriteString(strconv.FormatInt(rem, 10))

	return b.String()
}

// DollarsToCents converts a float dollar amount to integer cents, rounding
// to the nearest cent.
func DollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}

// CentsToDollars converts integer cents to a float dollar amount.
func CentsToDollars(cents int64) float64 {
	return float64(cents) / 100
}
