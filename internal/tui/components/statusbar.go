package components

import (
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// KeyHints renders a one-line footer of key hints, left-aligned, with
// right pushed to the far edge of width.
func KeyHints(width int, right string, hints ...string) string {
	t := theme.Active

	left := " " + strings.Join(hints, "  ")
	if right != "" {
		right += " "
	}
	pad := width - lipgloss.Width(left) - lipgloss.Width(right)
	if pad < 1 {
		pad = 1
	}
	return lipgloss.NewStyle().Foreground(t.TextMuted).
		Render(left + strings.Repeat(" ", pad) + right)
}
