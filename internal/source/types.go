package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/model"
)

// Load failures. Callers match them with errors.Is.
var (
	ErrDatasetNotFound = errors.New("dataset not found")
	ErrEmptyDataset    = errors.New("dataset is empty")
	ErrMissingColumns  = errors.New("dataset missing columns")
	ErrInvalidYear     = errors.New("invalid year")
	ErrNonPositiveCost = errors.New("all costs must be positive")
	ErrNoTotalRows     = errors.New(`no rows with component == "Total" found`)
	ErrUnknownKind     = errors.New("unknown dataset kind")
)

// Kind identifies which dataset a query runs against.
type Kind string

// Dataset kinds.
const (
	KindOverall       Kind = "overall"
	KindGraduate      Kind = "graduate"
	KindUndergraduate Kind = "undergraduate"
)

// TotalProgram is the only undergraduate component kept after loading.
const TotalProgram = "Total"

// ParseKind accepts the long names and their one-letter forms ("o", "g", "u").
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "overall", "o", "":
		return KindOverall, nil
	case "graduate", "g", "grad":
		return KindGraduate, nil
	case "undergraduate", "u", "undergrad":
		return KindUndergraduate, nil
	}
	return "", fmt.Errorf("%w: %q (want overall, graduate or undergraduate)", ErrUnknownKind, s)
}

// ProgramColumn returns the CSV column holding the program label for kind.
func ProgramColumn(kind Kind) string {
	if kind == KindUndergraduate {
		return "component"
	}
	return "school"
}

// OverallResult holds the output of loading the overall dataset.
type OverallResult struct {
	Path    string
	Records []model.TuitionRecord
	Rows    int // data lines read, excluding the header
	Skipped int // rows dropped for missing or non-numeric fields
}

// TuitionRows returns only the "Fees/Tuition" expense rows.
func (r *OverallResult) TuitionRows() []model.TuitionRecord {
	var out []model.TuitionRecord
	for _, rec := range r.Records {
		if strings.EqualFold(strings.TrimSpace(rec.Expense), model.ExpenseTuition) {
			out = append(out, rec)
		}
	}
	return out
}

// YearCosts flattens the tuition rows into per-type observations.
func (r *OverallResult) YearCosts() []model.YearCost {
	rows := r.TuitionRows()
	out := make([]model.YearCost, 0, len(rows))
	for _, rec := range rows {
		out = append(out, model.YearCost{Category: rec.Type, Year: rec.Year, Cost: rec.Value})
	}
	return out
}

// ProgramResult holds the output of loading a graduate or undergraduate dataset.
type ProgramResult struct {
	Path    string
	Kind    Kind
	Records []model.ProgramRecord
	Rows    int
	Skipped int
}

// YearCosts flattens the program rows into per-program observations.
func (r *ProgramResult) YearCosts() []model.YearCost {
	out := make([]model.YearCost, 0, len(r.Records))
	for _, rec := range r.Records {
		out = append(out, model.YearCost{Category: rec.Program, Year: rec.Year, Cost: rec.Cost})
	}
	return out
}
