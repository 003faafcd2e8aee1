package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := map[string]string{
		"0":          "0.00",
		"999":        "999.00",
		"1000":       "1,000.00",
		"12000":      "12,000.00",
		"123456.789": "1,23,456.79",
		"1234567.5":  "12,34,567.50",
		"-42480":     "-42,480.00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatAmount(decimal.RequireFromString(in)), in)
	}
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "₹42,480.00", FormatCurrency(decimal.NewFromInt(42480)))
	assert.Equal(t, "-₹5.00", FormatCurrency(decimal.NewFromInt(-5)))
}

func TestAmountToWords(t *testing.T) {
	assert.Equal(t, "Twelve Thousand Rupees Only", AmountToWords(decimal.NewFromInt(12000)))
	assert.Equal(t, "Forty Two Thousand Four Hundred Eighty Rupees Only", AmountToWords(decimal.NewFromInt(42480)))
	assert.Equal(t, "One Lakh Rupees and Fifty Paise Only", AmountToWords(decimal.RequireFromString("100000.50")))
	assert.Equal(t, "Two Crore Five Rupees Only", AmountToWords(decimal.NewFromInt(20000005)))
	assert.Equal(t, "Zero Rupees Only", AmountToWords(decimal.Zero))
}
