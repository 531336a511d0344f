package components

import (
	"fmt"

	"github.com/theirongolddev/tuitioncast/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// StageBar renders loading progress as "[bar] done/total".
func StageBar(done, total, width int) string {
	t := theme.Active

	pct := 0.0
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	if width < 4 {
		width = 4
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(width),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	count := lipgloss.NewStyle().Foreground(t.TextMuted).Render(fmt.Sprintf(" %d/%d", done, total))
	return bar.ViewAs(pct) + count
}
