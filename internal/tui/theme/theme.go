// Package theme defines the color themes shared by CLI tables, the
// interactive form and rendered charts.
package theme

import (
	"image/color"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme defines the color roles used for terminal output.
type Theme struct {
	Name        string
	Border      lipgloss.Color // table rules and boxes
	TextDim     lipgloss.Color // hints, disabled
	TextMuted   lipgloss.Color // labels, metadata
	TextPrimary lipgloss.Color
	Accent      lipgloss.Color // headers, focused fields
	Green       lipgloss.Color // costs
	Orange      lipgloss.Color // warnings
	Red         lipgloss.Color // errors
	Blue        lipgloss.Color
	Yellow      lipgloss.Color
	Magenta     lipgloss.Color

	// Series is the ordered palette for chart lines, as hex strings.
	Series []string
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme - warm, paper-inspired dark theme.
var FlexokiDark = Theme{
	Name:        "flexoki-dark",
	Border:      lipgloss.Color("#403E3C"),
	TextDim:     lipgloss.Color("#575653"),
	TextMuted:   lipgloss.Color("#878580"),
	TextPrimary: lipgloss.Color("#FFFCF0"),
	Accent:      lipgloss.Color("#3AA99F"),
	Green:       lipgloss.Color("#879A39"),
	Orange:      lipgloss.Color("#DA702C"),
	Red:         lipgloss.Color("#D14D41"),
	Blue:        lipgloss.Color("#4385BE"),
	Yellow:      lipgloss.Color("#D0A215"),
	Magenta:     lipgloss.Color("#CE5D97"),
	Series:      []string{"#3AA99F", "#DA702C", "#4385BE", "#879A39", "#CE5D97", "#D0A215", "#8B7EC8"},
}

// CatppuccinMocha is a warm pastel theme with soft, soothing colors.
var CatppuccinMocha = Theme{
	Name:        "catppuccin-mocha",
	Border:      lipgloss.Color("#585B70"),
	TextDim:     lipgloss.Color("#6C7086"),
	TextMuted:   lipgloss.Color("#A6ADC8"),
	TextPrimary: lipgloss.Color("#CDD6F4"),
	Accent:      lipgloss.Color("#89B4FA"),
	Green:       lipgloss.Color("#A6E3A1"),
	Orange:      lipgloss.Color("#FAB387"),
	Red:         lipgloss.Color("#F38BA8"),
	Blue:        lipgloss.Color("#89B4FA"),
	Yellow:      lipgloss.Color("#F9E2AF"),
	Magenta:     lipgloss.Color("#CBA6F7"),
	Series:      []string{"#89B4FA", "#FAB387", "#A6E3A1", "#F38BA8", "#CBA6F7", "#F9E2AF", "#94E2D5"},
}

// TokyoNight is a cool blue/purple theme inspired by Tokyo city lights.
var TokyoNight = Theme{
	Name:        "tokyo-night",
	Border:      lipgloss.Color("#3B4261"),
	TextDim:     lipgloss.Color("#565F89"),
	TextMuted:   lipgloss.Color("#A9B1D6"),
	TextPrimary: lipgloss.Color("#C0CAF5"),
	Accent:      lipgloss.Color("#7AA2F7"),
	Green:       lipgloss.Color("#9ECE6A"),
	Orange:      lipgloss.Color("#FF9E64"),
	Red:         lipgloss.Color("#F7768E"),
	Blue:        lipgloss.Color("#7AA2F7"),
	Yellow:      lipgloss.Color("#E0AF68"),
	Magenta:     lipgloss.Color("#BB9AF7"),
	Series:      []string{"#7AA2F7", "#FF9E64", "#9ECE6A", "#F7768E", "#BB9AF7", "#E0AF68", "#7DCFFF"},
}

// Terminal uses ANSI 16 colors only - maximum compatibility.
var Terminal = Theme{
	Name:        "terminal",
	Border:      lipgloss.Color("8"),
	TextDim:     lipgloss.Color("8"),
	TextMuted:   lipgloss.Color("7"),
	TextPrimary: lipgloss.Color("15"),
	Accent:      lipgloss.Color("6"),
	Green:       lipgloss.Color("2"),
	Orange:      lipgloss.Color("3"),
	Red:         lipgloss.Color("1"),
	Blue:        lipgloss.Color("4"),
	Yellow:      lipgloss.Color("3"),
	Magenta:     lipgloss.Color("5"),
	Series:      []string{"#008080", "#808000", "#000080", "#008000", "#800080", "#800000"},
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// Names returns the names of all themes in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// ByName returns a theme by its name, defaulting to FlexokiDark.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return FlexokiDark
}

// SetActive sets the active theme by name. Terminals without 256-color
// support always get the Terminal theme.
func SetActive(name string) {
	switch termenv.ColorProfile() {
	case termenv.ANSI, termenv.Ascii:
		Active = Terminal
	default:
		Active = ByName(name)
	}
}

// Huh builds a form theme from the active palette.
func Huh() *huh.Theme {
	t := huh.ThemeBase()
	a := Active

	t.Focused.Base = t.Focused.Base.BorderForeground(a.Accent)
	t.Focused.Title = t.Focused.Title.Foreground(a.Accent).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(a.TextMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(a.Red)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(a.Red)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(a.Accent)
	t.Focused.Option = t.Focused.Option.Foreground(a.TextPrimary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(a.Green)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(a.Green)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(a.TextPrimary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(a.TextPrimary).Background(a.Accent)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(a.TextMuted)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(a.Accent)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(a.Accent)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderForeground(a.Border)
	t.Blurred.Title = t.Blurred.Title.Foreground(a.TextMuted).Bold(false)
	return t
}

// SeriesColor returns the i-th chart color, cycling through the palette.
func SeriesColor(i int) color.Color {
	s := Active.Series
	if len(s) == 0 {
		return color.Black
	}
	return Hex(s[i%len(s)])
}

// Hex parses "#RRGGBB". Malformed input yields black.
func Hex(s string) color.Color {
	if len(s) != 7 || s[0] != '#' {
		return color.Black
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.Black
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
