// Package source reads and validates the tuition CSV datasets.
package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/model"
)

// Required columns per dataset.
var (
	overallColumns = []string{"Year", "State", "Type", "Expense", "Value"}
	yearColumn     = "academic.year"
	costColumn     = "cost"
)

// table is an open CSV file with its header resolved to column indexes.
type table struct {
	f      *os.File
	r      *csv.Reader
	cols   map[string]int
	line   int
	record []string
}

func openTable(path string, required []string) (*table, error) {
	f, err := os.Open(path) //nolint:gosec // dataset path comes from config or flags
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		_ = f.Close()
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s", ErrEmptyDataset, path)
		}
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if _, dup := cols[h]; !dup {
			cols[h] = i
		}
	}

	var missing []string
	for _, c := range required {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		_ = f.Close()
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return &table{f: f, r: r, cols: cols, line: 1}, nil
}

// next advances to the next data row. It returns io.EOF at the end.
func (t *table) next() error {
	rec, err := t.r.Read()
	if err != nil {
		return err
	}
	t.line++
	t.record = rec
	return nil
}

// field returns the trimmed value of column name, or "" if the row is short.
func (t *table) field(name string) string {
	i, ok := t.cols[name]
	if !ok || i >= len(t.record) {
		return ""
	}
	return strings.TrimSpace(t.record[i])
}

func (t *table) close() { _ = t.f.Close() }

// LoadOverall reads the overall dataset: Year, State, Type, Length, Expense, Value.
// Rows missing Year, Type or Value, or with a non-numeric Value, are skipped.
// A non-integer Year on a kept row, or any non-positive Value, fails the load.
func LoadOverall(path string) (*OverallResult, error) {
	t, err := openTable(path, overallColumns)
	if err != nil {
		return nil, err
	}
	defer t.close()

	result := &OverallResult{Path: path}
	for {
		err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		result.Rows++

		yearStr, typ, valStr := t.field("Year"), t.field("Type"), t.field("Value")
		if yearStr == "" || typ == "" || valStr == "" {
			result.Skipped++
			continue
		}

		value, ok := parseCost(valStr)
		if !ok {
			result.Skipped++
			continue
		}

		year, ok := parseWholeYear(yearStr)
		if !ok {
			return nil, fmt.Errorf("%w %q at %s line %d", ErrInvalidYear, yearStr, path, t.line)
		}
		if value <= 0 {
			return nil, fmt.Errorf("%w: got %g at %s line %d", ErrNonPositiveCost, value, path, t.line)
		}

		result.Records = append(result.Records, model.TuitionRecord{
			Year:    year,
			State:   t.field("State"),
			Type:    NormalizeType(typ),
			Length:  t.field("Length"),
			Expense: t.field("Expense"),
			Value:   value,
		})
	}

	if len(result.Records) == 0 {
		return nil, fmt.Errorf("%w: no usable rows in %s", ErrEmptyDataset, path)
	}
	return result, nil
}

// LoadPrograms reads a graduate ("school") or undergraduate ("component")
// dataset with columns academic.year, <program>, cost. Undergraduate data
// is reduced to the "Total" component.
func LoadPrograms(path string, kind Kind) (*ProgramResult, error) {
	if kind != KindGraduate && kind != KindUndergraduate {
		return nil, fmt.Errorf("%w: %q has no program dataset", ErrUnknownKind, kind)
	}
	progCol := ProgramColumn(kind)

	t, err := openTable(path, []string{yearColumn, progCol, costColumn})
	if err != nil {
		return nil, err
	}
	defer t.close()

	result := &ProgramResult{Path: path, Kind: kind}
	for {
		err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		result.Rows++

		prog := t.field(progCol)
		year, yearOK := parseWholeYear(t.field(yearColumn))
		cost, costOK := parseCost(t.field(costColumn))
		if prog == "" || !yearOK || !costOK {
			result.Skipped++
			continue
		}
		if cost <= 0 {
			return nil, fmt.Errorf("%w: got %g at %s line %d", ErrNonPositiveCost, cost, path, t.line)
		}

		if kind == KindUndergraduate && prog != TotalProgram {
			continue
		}

		result.Records = append(result.Records, model.ProgramRecord{
			Year:    year,
			Program: prog,
			Cost:    cost,
		})
	}

	if len(result.Records) == 0 {
		if kind == KindUndergraduate && result.Rows > result.Skipped {
			return nil, fmt.Errorf("%s: %w", path, ErrNoTotalRows)
		}
		return nil, fmt.Errorf("%w: no usable rows in %s", ErrEmptyDataset, path)
	}
	return result, nil
}

// parseCost parses a numeric cell. NaN and infinities count as missing.
func parseCost(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseWholeYear accepts "2021" and "2021.0" but not "2021.5" or "2021-22".
func parseWholeYear(s string) (int, bool) {
	if y, err := strconv.Atoi(s); err == nil {
		return y, true
	}
	f, ok := parseCost(s)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
