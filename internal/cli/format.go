// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// OverBudgetLabel replaces the remaining amount when expenses exceed the budget.
const OverBudgetLabel = "Over Budget!"

// FormatCost formats a USD amount with two decimals and comma separators.
// e.g., 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatCost(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatCost(d.Neg())
	}
	d = d.Round(2)
	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("$%s.%02d", FormatNumber(whole.IntPart()), cents)
}

// FormatRemaining formats the remaining budget, or OverBudgetLabel when negative.
func FormatRemaining(d decimal.Decimal) string {
	if d.IsNegative() {
		return OverBudgetLabel
	}
	return FormatCost(d)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatDelta formats an amount change with an explicit sign.
func FormatDelta(current, previous decimal.Decimal) string {
	delta := current.Sub(previous)
	if delta.IsNegative() {
		return "-" + FormatCost(delta.Neg())
	}
	return "+" + FormatCost(delta)
}
