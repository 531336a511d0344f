// Package components provides the small widgets drawn by the estimate form.
package components

import (
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Metric is one labelled value shown in a metric card.
type Metric struct {
	Label string
	Value string
	Note  string
}

// LayoutRow distributes totalWidth into n widths that sum to exactly totalWidth.
// Leading items absorb the remainder.
func LayoutRow(totalWidth, n int) []int {
	if n <= 0 {
		return nil
	}
	base := totalWidth / n
	rem := totalWidth % n
	widths := make([]int, n)
	for i := range widths {
		widths[i] = base
		if i < rem {
			widths[i]++
		}
	}
	return widths
}

func cardStyle(outerWidth int, border lipgloss.Color) lipgloss.Style {
	w := outerWidth - 2 // border
	if w < 10 {
		w = 10
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(w).
		Padding(0, 1)
}

// MetricCard renders a bordered card with a label, a bold value and an optional note.
func MetricCard(m Metric, outerWidth int) string {
	t := theme.Active

	label := lipgloss.NewStyle().Foreground(t.TextMuted).Render(m.Label)
	value := lipgloss.NewStyle().Foreground(t.Green).Bold(true).Render(m.Value)
	content := label + "\n" + value
	if m.Note != "" {
		content += "\n" + lipgloss.NewStyle().Foreground(t.TextDim).Render(m.Note)
	}
	return cardStyle(outerWidth, t.Border).Render(content)
}

// MetricRow renders metric cards side by side, filling totalWidth.
func MetricRow(metrics []Metric, totalWidth int) string {
	if len(metrics) == 0 {
		return ""
	}
	widths := LayoutRow(totalWidth, len(metrics))
	cards := make([]string, len(metrics))
	for i, m := range metrics {
		cards[i] = MetricCard(m, widths[i])
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// DetailCard renders aligned "label  value" lines inside a titled card.
func DetailCard(title string, rows [][2]string, outerWidth int) string {
	t := theme.Active

	labelW := 0
	for _, r := range rows {
		if w := lipgloss.Width(r[0]); w > labelW {
			labelW = w
		}
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Width(labelW + 2)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var b strings.Builder
	if title != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Bold(true).Render(title))
		b.WriteString("\n")
	}
	for i, r := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(valueStyle.Render(r[1]))
	}
	return cardStyle(outerWidth, t.Border).Render(b.String())
}
