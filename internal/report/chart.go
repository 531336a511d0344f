package report

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/cli"
	"github.com/theirongolddev/tuitioncast/internal/model"
	"github.com/theirongolddev/tuitioncast/internal/tui/theme"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Chart dimensions.
const (
	chartWidth  = 10 * vg.Inch
	chartHeight = 6 * vg.Inch
)

// SaveChart renders series to path. The image format follows the file
// extension (png, svg, pdf, jpg).
func SaveChart(path, title string, series []model.ProjectionSeries) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format == "" {
		return fmt.Errorf("chart path %q has no extension", path)
	}
	out, err := os.Create(path) //nolint:gosec // output path comes from flags
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteChart(out, format, title, series); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// WriteChart draws one line per series, marking each category's last
// observed year, and encodes the result in format.
func WriteChart(w io.Writer, format, title string, series []model.ProjectionSeries) error {
	if len(series) == 0 {
		return ErrNoSeries
	}

	p, err := buildChart(title, series)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(chartWidth, chartHeight, format)
	if err != nil {
		return fmt.Errorf("encoding chart: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

func buildChart(title string, series []model.ProjectionSeries) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Projected cost"
	p.X.Tick.Marker = yearTicks{}
	p.Y.Tick.Marker = usdTicks{}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	multiKind := false
	for _, s := range series[1:] {
		if s.Kind != series[0].Kind {
			multiKind = true
			break
		}
	}

	for i, s := range series {
		if len(s.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j].X = float64(pt.Year)
			xys[j].Y = pt.Cost
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("plotting %s: %w", s.Category, err)
		}
		line.Color = theme.SeriesColor(i)
		line.Width = vg.Points(2)
		p.Add(line)

		label := s.Category
		if multiKind {
			label = s.Kind + ": " + s.Category
		}
		p.Legend.Add(label, line)

		first, last := s.Points[0].Year, s.Points[len(s.Points)-1].Year
		if s.Trend.LastYear >= first && s.Trend.LastYear <= last {
			anchor, err := plotter.NewScatter(plotter.XYs{{X: float64(s.Trend.LastYear), Y: s.Trend.LastCost}})
			if err != nil {
				return nil, err
			}
			anchor.GlyphStyle.Color = line.Color
			anchor.GlyphStyle.Radius = vg.Points(4)
			anchor.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(anchor)
		}
	}
	return p, nil
}

// yearTicks labels whole years only.
type yearTicks struct{}

func (yearTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(lo, hi)
	for i := range ticks {
		if ticks[i].Label == "" {
			continue
		}
		if ticks[i].Value != math.Trunc(ticks[i].Value) {
			ticks[i].Label = ""
			continue
		}
		ticks[i].Label = strconv.Itoa(int(ticks[i].Value))
	}
	return ticks
}

// usdTicks labels cost ticks as whole dollars.
type usdTicks struct{}

func (usdTicks) Ticks(lo, hi float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(lo, hi)
	for i := range ticks {
		if ticks[i].Label != "" {
			ticks[i].Label = cli.FormatCost(ticks[i].Value)
		}
	}
	return ticks
}
