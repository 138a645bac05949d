package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats a decimal amount with the given number of fraction digits.
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}

// FormatINR renders an amount using Indian digit grouping with a rupee prefix,
// e.g. 1234567.5 becomes "₹12,34,567.50". Amounts are fixed to two fraction digits.
func FormatINR(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	grouped := groupIndian(intPart)

	var b strings.Builder
	if negative {
		b.WriteString("-")
	}
	b.WriteString("₹")
	b.WriteString(grouped)
	b.WriteString(".")
	b.WriteString(fracPart)
	return b.String()
}

// groupIndian inserts commas per the Indian numbering system: the last three
// digits form one group, every two digits before that form another.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return strings.Join(groups, ",") + "," + tail
}
