package calculator

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds v to 2 decimal places, halves away from zero.
// NaN and infinities are returned unchanged.
func Round2(v float64) float64 {
	if !isFinite(v) {
		return v
	}
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// FormatAmount renders a rupee amount with 2 decimals and lakh/crore digit
// grouping: 1234567.5 -> "Rs12,34,567.50".
func FormatAmount(v float64) string {
	if !isFinite(v) {
		return "Rs" + strconv.FormatFloat(v, 'f', -1, 64)
	}
	d := decimal.NewFromFloat(v).Round(2)
	parts := strings.SplitN(d.Abs().StringFixed(2), ".", 2)

	s := "Rs" + groupDigits(parts[0]) + "." + parts[1]
	if d.IsNegative() {
		return "-" + s
	}
	return s
}

// FormatQuantity renders a quantity in metric tons with 3 decimals.
func FormatQuantity(v float64) string {
	if !isFinite(v) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(3)
}

// groupDigits keeps the last 3 digits together and groups the rest in pairs.
func groupDigits(s string) string {
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]

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
