package cli

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

type styles struct {
	title, header, value, muted, cost, warn, dim lipgloss.Style
}

// currentStyles derives styles from the active theme so a theme switch
// applies to every later render.
func currentStyles() styles {
	t := theme.Active
	return styles{
		title:  lipgloss.NewStyle().Bold(true).Foreground(t.TextPrimary).Align(lipgloss.Center),
		header: lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		value:  lipgloss.NewStyle().Foreground(t.TextPrimary),
		muted:  lipgloss.NewStyle().Foreground(t.TextMuted),
		cost:   lipgloss.NewStyle().Foreground(t.Green),
		warn:   lipgloss.NewStyle().Foreground(t.Orange),
		dim:    lipgloss.NewStyle().Foreground(t.TextDim),
	}
}

// Table represents a bordered text table for CLI output.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Widths  []int // optional column widths, auto-calculated if nil
}

// RenderTitle renders a centered title bar in a bordered box.
func RenderTitle(title string) string {
	st := currentStyles()
	width := 55
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Active.Border).
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(st.title.Render(title))
}

// RenderCost renders a highlighted cost line: "  label  $12,345.67".
func RenderCost(label string, amount float64) string {
	st := currentStyles()
	return fmt.Sprintf("  %s  %s", st.muted.Render(label), st.cost.Render(FormatUSD(amount)))
}

// RenderWarning renders a one-line warning.
func RenderWarning(msg string) string {
	return "  " + currentStyles().warn.Render(msg)
}

// RenderTable renders a bordered table with headers and rows.
// A row holding the single cell "---" renders as a separator.
func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	st := currentStyles()

	numCols := len(t.Headers)
	if numCols == 0 && len(t.Rows) > 0 {
		numCols = len(t.Rows[0])
	}

	widths := make([]int, numCols)
	if t.Widths != nil {
		copy(widths, t.Widths)
	} else {
		for i, h := range t.Headers {
			widths[i] = max(widths[i], lipgloss.Width(h))
		}
		for _, row := range t.Rows {
			for i, cell := range row {
				if i < numCols {
					widths[i] = max(widths[i], lipgloss.Width(cell))
				}
			}
		}
	}

	rule := func(left, mid, right string) string {
		var b strings.Builder
		b.WriteString(st.dim.Render(left))
		for i, w := range widths {
			b.WriteString(st.dim.Render(strings.Repeat("─", w+2)))
			if i < numCols-1 {
				b.WriteString(st.dim.Render(mid))
			}
		}
		b.WriteString(st.dim.Render(right))
		b.WriteString("\n")
		return b.String()
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(st.header.Render(t.Title))
		b.WriteString("\n")
	}

	b.WriteString(rule("╭", "┬", "╮"))

	if len(t.Headers) > 0 {
		b.WriteString(st.dim.Render("│"))
		for i, h := range t.Headers {
			b.WriteString(st.header.Render(fmt.Sprintf(" %-*s ", widths[i], h)))
			if i < numCols-1 {
				b.WriteString(st.dim.Render("│"))
			}
		}
		b.WriteString(st.dim.Render("│"))
		b.WriteString("\n")
		b.WriteString(rule("├", "┼", "┤"))
	}

	for _, row := range t.Rows {
		if len(row) == 1 && row[0] == "---" {
			b.WriteString(rule("├", "┼", "┤"))
			continue
		}

		b.WriteString(st.dim.Render("│"))
		for i := 0; i < numCols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}

			// First column is a label; the rest are numbers and right-align.
			var padded string
			if i == 0 {
				padded = fmt.Sprintf(" %-*s ", widths[i], cell)
			} else {
				padded = fmt.Sprintf(" %*s ", widths[i], cell)
			}
			b.WriteString(st.value.Render(padded))
			if i < numCols-1 {
				b.WriteString(st.dim.Render("│"))
			}
		}
		b.WriteString(st.dim.Render("│"))
		b.WriteString("\n")
	}

	b.WriteString(rule("╰", "┴", "╯"))
	return b.String()
}

// RenderSparkline generates a unicode block sparkline from a series of values.
// The lowest value maps to the shortest block.
func RenderSparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	for _, v := range values {
		idx := int((v - lo) / span * float64(len(blocks)-1))
		idx = max(0, min(idx, len(blocks)-1))
		b.WriteRune(blocks[idx])
	}
	return b.String()
}
