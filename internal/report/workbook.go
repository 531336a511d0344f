// Package report renders projections to spreadsheet and chart files.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/theirongolddev/tuitioncast/internal/model"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrNoSeries is returned when there is nothing to render.
var ErrNoSeries = errors.New("no projection series to render")

const (
	trendSheet = "Trends"
	usdFormat  = `"$"#,##0.00`
)

var trendHeaders = []string{"Kind", "Category", "First Year", "Last Year", "Years", "Last Cost", "Avg Delta"}

// SaveWorkbook writes the projection workbook to path.
func SaveWorkbook(path string, series []model.ProjectionSeries) error {
	out, err := os.Create(path) //nolint:gosec // output path comes from flags
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := WriteWorkbook(out, series); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// WriteWorkbook writes an .xlsx with a Trends summary sheet and one sheet
// per dataset kind holding a Year x Category projection grid.
func WriteWorkbook(w io.Writer, series []model.ProjectionSeries) error {
	if len(series) == 0 {
		return ErrNoSeries
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", trendSheet); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	usd := usdFormat
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &usd})
	if err != nil {
		return err
	}

	if err := writeTrendSheet(f, series, bold, money); err != nil {
		return err
	}

	byKind := make(map[string][]model.ProjectionSeries)
	var kinds []string
	for _, s := range series {
		if _, ok := byKind[s.Kind]; !ok {
			kinds = append(kinds, s.Kind)
		}
		byKind[s.Kind] = append(byKind[s.Kind], s)
	}
	for _, k := range kinds {
		if err := writeProjectionSheet(f, sheetName(k), byKind[k], bold, money); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeTrendSheet(f *excelize.File, series []model.ProjectionSeries, bold, money int) error {
	for i, h := range trendHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(trendSheet, cell, h); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(trendSheet, "A1", "G1", bold); err != nil {
		return err
	}

	for i, s := range series {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		t := s.Trend
		values := []interface{}{s.Kind, s.Category, t.FirstYear, t.LastYear, t.Years, t.LastCost, t.AvgDelta}
		if err := f.SetSheetRow(trendSheet, cell, &values); err != nil {
			return err
		}
	}

	last := len(series) + 1
	from, _ := excelize.CoordinatesToCellName(6, 2)
	to, _ := excelize.CoordinatesToCellName(7, last)
	if err := f.SetCellStyle(trendSheet, from, to, money); err != nil {
		return err
	}
	if err := f.SetColWidth(trendSheet, "A", "B", 24); err != nil {
		return err
	}
	return f.SetColWidth(trendSheet, "C", "G", 14)
}

func writeProjectionSheet(f *excelize.File, sheet string, series []model.ProjectionSeries, bold, money int) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	// Rows are the union of projected years; every series normally shares them.
	yearSet := make(map[int]struct{})
	for _, s := range series {
		for _, p := range s.Points {
			yearSet[p.Year] = struct{}{}
		}
	}
	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)
	rowOf := make(map[int]int, len(years))
	for i, y := range years {
		rowOf[y] = i + 2
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetCellValue(sheet, cell, y); err != nil {
			return err
		}
	}

	if err := f.SetCellValue(sheet, "A1", "Year"); err != nil {
		return err
	}
	for c, s := range series {
		col := c + 2
		head, _ := excelize.CoordinatesToCellName(col, 1)
		if err := f.SetCellValue(sheet, head, s.Category); err != nil {
			return err
		}
		for _, p := range s.Points {
			cell, _ := excelize.CoordinatesToCellName(col, rowOf[p.Year])
			if err := f.SetCellValue(sheet, cell, p.Cost); err != nil {
				return err
			}
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(series) + 1)
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}
	if len(years) > 0 {
		to, _ := excelize.CoordinatesToCellName(len(series)+1, len(years)+1)
		if err := f.SetCellStyle(sheet, "B2", to, money); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "B", lastCol, 20); err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// sheetName turns a dataset kind into a sheet title: "graduate" -> "Graduate".
func sheetName(kind string) string {
	if kind == "" {
		return "Projections"
	}
	return cases.Title(language.English).String(kind)
}
