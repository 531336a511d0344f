// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatUSD formats a dollar amount rounded to cents with thousands separators.
// e.g., 38750 -> "$38,750.00", -1234.5 -> "-$1,234.50"
func FormatUSD(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)
	neg := d.IsNegative()
	if neg {
		d = d.Neg()
	}

	whole := d.Truncate(0)
	cents := d.Sub(whole).Shift(2).IntPart()

	s := "$" + groupDigits(whole.String()) + fmt.Sprintf(".%02d", cents)
	if neg {
		return "-" + s
	}
	return s
}

// FormatCost formats a cost to whole dollars for dense tables.
func FormatCost(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(0)
	if d.IsNegative() {
		return "-$" + groupDigits(d.Neg().String())
	}
	return "$" + groupDigits(d.String())
}

// FormatDelta formats a signed yearly change, e.g. "+$1,250.00/yr".
func FormatDelta(delta float64) string {
	s := FormatUSD(delta)
	if delta >= 0 {
		s = "+" + s
	}
	return s + "/yr"
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	return groupDigits(strconv.FormatInt(n, 10))
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatYearSpan formats an inclusive year range, collapsing a single year.
func FormatYearSpan(first, last int) string {
	if first == last {
		return strconv.Itoa(first)
	}
	return fmt.Sprintf("%d-%d", first, last)
}

func groupDigits(s string) string {
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
