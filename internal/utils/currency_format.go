package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is prefixed to every formatted amount.
const CurrencySymbol = "₹"

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// GroupIndian inserts thousands separators using Indian grouping, where the
// last three digits form one group and the rest are grouped in pairs.
// Example: "1234567" returns "12,34,567"
func GroupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(append(groups, tail), ",")
}

// FormatAmount renders amount with two fixed decimals and Indian grouping.
// Example: 1234567.5 returns "12,34,567.50"
func FormatAmount(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := FormatWithPrecision(amount, 2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + GroupIndian(whole) + "." + frac
}

// FormatCurrency is FormatAmount with the currency symbol.
func FormatCurrency(amount decimal.Decimal) string {
	s := FormatAmount(amount)
	if strings.HasPrefix(s, "-") {
		return "-" + CurrencySymbol + s[1:]
	}
	return CurrencySymbol + s
}
