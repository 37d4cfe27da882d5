package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"5551234567", "(555) 123-4567"},
		{"15551234567", "(555) 123-4567"},
		{"+15551234567", "(555) 123-4567"},
		{"555-123-4567", "(555) 123-4567"},
		{"(555) 123-4567", "(555) 123-4567"},
		{"12345", "12345"},
		{"+442071838750", "+442071838750"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPhone(tt.in), "input %q", tt.in)
	}
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{108, "$108.00"},
		{1234.5, "$1,234.50"},
		{1234567.891, "$1,234,567.89"},
		{999.999, "$1,000.00"},
		{-42.5, "-$42.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCurrency(tt.in), "input %v", tt.in)
	}
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+15551234567"))
	assert.True(t, ValidatePhone("555-123-4567"))
	assert.True(t, ValidatePhone("(555) 123-4567"))
	assert.False(t, ValidatePhone("12"))
	assert.False(t, ValidatePhone("not a phone"))
	assert.False(t, ValidatePhone("0123456789"))
}
