package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriceCents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		cents int64
		ok    bool
	}{
		{"dollar prefix", "$29.99", 2999, true},
		{"no prefix", "29.99", 2999, true},
		{"whole dollars", "$45", 4500, true},
		{"thousands separator", "$1,299.00", 129900, true},
		{"leading whitespace", "  $10.50", 1050, true},
		{"single decimal", "$4.5", 450, true},
		{"zero", "$0.00", 0, true},
		{"empty", "", 0, false},
		{"bare dollar sign", "$", 0, false},
		{"not a number", "$abc", 0, false},
		{"words", "free", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cents, ok := ParsePriceCents(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.cents, cents)
		})
	}
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$29.99", FormatUSD(2999))
	assert.Equal(t, "$0.00", FormatUSD(0))
	assert.Equal(t, "$0.05", FormatUSD(5))
	assert.Equal(t, "$8.99", FormatUSD(899))
	assert.Equal(t, "$1299.00", FormatUSD(129900))
	assert.Equal(t, "-$4.50", FormatUSD(-450))
}

func TestParseFormatRoundTrip(t *testing.T) {
	cents, ok := ParsePriceCents(FormatUSD(7499))
	assert.True(t, ok)
	assert.Equal(t, int64(7499), cents)
}

func TestDollarsToCents(t *testing.T) {
	assert.Equal(t, int64(2999), DollarsToCents(29.99))
	// 0.1 + 0.2 style float residue must still land on the right cent
	assert.Equal(t, int64(830), DollarsToCents(8.299999999999999))
}
