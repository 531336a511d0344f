package cli

import (
	"strings"
	"testing"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{5, "$5.00"},
		{999.999, "$1,000.00"},
		{38750, "$38,750.00"},
		{1234567.891, "$1,234,567.89"},
		{-1234.5, "-$1,234.50"},
		{0.1 + 0.2, "$0.30"},
	}
	for _, tt := range tests {
		if got := FormatUSD(tt.in); got != tt.want {
			t.Errorf("FormatUSD(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCost(t *testing.T) {
	if got := FormatCost(32499.6); got != "$32,500" {
		t.Errorf("FormatCost = %q", got)
	}
	if got := FormatCost(-1500); got != "-$1,500" {
		t.Errorf("FormatCost negative = %q", got)
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(1250); got != "+$1,250.00/yr" {
		t.Errorf("FormatDelta = %q", got)
	}
	if got := FormatDelta(-20); got != "-$20.00/yr" {
		t.Errorf("FormatDelta negative = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	for in, want := range map[int64]string{0: "0", 999: "999", 1000: "1,000", -1234567: "-1,234,567"} {
		if got := FormatNumber(in); got != want {
			t.Errorf("FormatNumber(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFormatYearSpan(t *testing.T) {
	if got := FormatYearSpan(2013, 2013); got != "2013" {
		t.Errorf("single year = %q", got)
	}
	if got := FormatYearSpan(2013, 2021); got != "2013-2021" {
		t.Errorf("span = %q", got)
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(Table{
		Title:   "Trends",
		Headers: []string{"Type", "Cost"},
		Rows:    [][]string{{"Private", "$1"}, {"---"}, {"Total", "$1"}},
	})
	for _, want := range []string{"Trends", "Private", "Total", "╭", "╯"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if RenderTable(Table{}) != "" {
		t.Error("empty table should render as empty string")
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{1, 2, 3}); got != "▁▄█" {
		t.Errorf("sparkline = %q", got)
	}
	if got := RenderSparkline([]float64{5, 5}); got != "▁▁" {
		t.Errorf("flat sparkline = %q", got)
	}
}
