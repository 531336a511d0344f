package theme

import (
	"image/color"
	"testing"
)

func TestByNameFallsBack(t *testing.T) {
	if got := ByName("tokyo-night").Name; got != "tokyo-night" {
		t.Errorf("ByName(tokyo-night) = %q", got)
	}
	if got := ByName("no-such-theme").Name; got != FlexokiDark.Name {
		t.Errorf("unknown theme = %q, want %q", got, FlexokiDark.Name)
	}
	if len(Names()) != len(All) {
		t.Errorf("Names() has %d entries, want %d", len(Names()), len(All))
	}
}

func TestHex(t *testing.T) {
	want := color.RGBA{R: 0x3A, G: 0xA9, B: 0x9F, A: 0xff}
	if got := Hex("#3AA99F"); got != want {
		t.Errorf("Hex = %v, want %v", got, want)
	}
	if got := Hex("3AA99F"); got != color.Black {
		t.Errorf("Hex without # = %v, want black", got)
	}
}

func TestSeriesColorCycles(t *testing.T) {
	old := Active
	defer func() { Active = old }()
	Active = FlexokiDark

	n := len(Active.Series)
	if SeriesColor(0) != SeriesColor(n) {
		t.Error("SeriesColor does not cycle")
	}
}

func TestHuhThemeBuilds(t *testing.T) {
	if Huh() == nil {
		t.Fatal("Huh() = nil")
	}
}
