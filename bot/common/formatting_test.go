package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatCoins(t *testing.T) {
	tests := []struct {
		name     string
		coins    int64
		expected string
	}{
		{"zero", 0, "0"},
		{"small", 42, "42"},
		{"exactly three digits", 999, "999"},
		{"four digits", 1000, "1,000"},
		{"seven digits", 1234567, "1,234,567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCoins(tt.coins))
		})
	}
}

func TestFormatPaymentResult(t *testing.T) {
	result := FormatPaymentResult(1500, "123456789")
	assert.Equal(t, "Paid **1,500 tokens** to <@123456789>.", result)
}

func TestFormatGrantResult(t *testing.T) {
	result := FormatGrantResult(100, "987654321", 2500)
	assert.Equal(t, "Granted **100 tokens** to <@987654321>. They now have **2,500 tokens**.", result)
}
