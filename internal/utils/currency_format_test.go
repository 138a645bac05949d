package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatINR(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		want   string
	}{
		{"small", "950", "₹950.00"},
		{"thousands", "12500", "₹12,500.00"},
		{"lakhs", "735000", "₹7,35,000.00"},
		{"crores", "12345678.9", "₹1,23,45,678.90"},
		{"zero", "0", "₹0.00"},
		{"negative", "-45000", "-₹45,000.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amt := decimal.RequireFromString(tc.amount)
			assert.Equal(t, tc.want, FormatINR(amt))
		})
	}
}
