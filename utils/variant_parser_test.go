package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSize(t *testing.T) {
	assert.Equal(t, "M", NormalizeSize("m"))
	assert.Equal(t, "XL", NormalizeSize(" xl "))
	assert.Equal(t, "2XL", NormalizeSize("XXL"))
	assert.Equal(t, "3XL", NormalizeSize("xxxl"))
	assert.Equal(t, "OS", NormalizeSize("One Size"))
	assert.Equal(t, "OS", NormalizeSize("onesize"))
	assert.Equal(t, "NAVY", NormalizeSize("Navy"))
}

func TestParseVariantTitle(t *testing.T) {
	tests := []struct {
		title string
		size  string
		color string
	}{
		{"S / Navy", "S", "Navy"},
		{"Black / XL", "XL", "Black"},
		{"XXL / Heather Grey", "2XL", "Heather Grey"},
		{"One Size", "OS", ""},
		{"Navy", "", "Navy"},
		{"M", "M", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			size, color := ParseVariantTitle(tt.title)
			assert.Equal(t, tt.size, size)
			assert.Equal(t, tt.color, color)
		})
	}
}
