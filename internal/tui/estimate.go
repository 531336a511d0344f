package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/tuitioncast/internal/model"
	"github.com/theirongolddev/tuitioncast/internal/pipeline"
	"github.com/theirongolddev/tuitioncast/internal/source"
)

// Education levels offered by the form.
const (
	EducationHighSchool = "High School"
	EducationCollege    = "College"
)

// Childcare options. The answer is shown back but does not affect the estimate.
var childcareOptions = []string{"Daycare", "Stay-at-Home Parent"}

// MinGraduationYear is the earliest high school graduation year the form accepts.
const MinGraduationYear = 2025

// collegeYears is the gap between high school graduation and the predicted academic year.
const collegeYears = 4

// Dataset is everything the form needs: option lists, the fitted model and
// the overall trends used for the side-by-side additive estimate.
type Dataset struct {
	States  []string
	Types   []string
	Lengths []string
	Model   model.RegressionModel
	Trends  map[string]model.CategoryTrend
	Trained bool // model was fitted during this load
}

// NewDataset builds the form's option lists. States and types come from
// the model's schema when it has them, so every choice can be encoded.
func NewDataset(res *source.OverallResult, m model.RegressionModel, trends map[string]model.CategoryTrend) *Dataset {
	d := &Dataset{
		States:  pipeline.StateNames(res.Records),
		Types:   pipeline.SortedCategories(trends),
		Lengths: pipeline.LengthLabels(res.Records),
		Model:   m,
		Trends:  trends,
	}
	if schema, err := pipeline.SchemaFromColumns(m.Columns, m.BaseYear); err == nil {
		if st := schema.States(); len(st) > 0 {
			d.States = st
		}
		if ty := schema.Types(); len(ty) > 0 {
			d.Types = ty
		}
	}
	return d
}

// FormValues holds the answers bound to the form fields.
type FormValues struct {
	Childcare string
	State     string
	GradYear  string
	Education string
	Type      string
	Length    string
}

// Result is the outcome of one form submission.
type Result struct {
	Values     FormValues
	Year       int     // predicted academic year
	Cost       float64 // regression prediction, 0 for high school
	TrendCost  float64 // additive projection for Type, when available
	HasTrend   bool
	HighSchool bool
}

// validateGradYear accepts digits only, no earlier than MinGraduationYear.
func validateGradYear(s string) error {
	y, err := pipeline.ParseYear(s)
	if err != nil {
		return errors.New("year must be digits only")
	}
	if y < MinGraduationYear {
		return fmt.Errorf("year must be %d or later", MinGraduationYear)
	}
	return nil
}

// Estimate evaluates the form answers against d.
func Estimate(v FormValues, d *Dataset) (Result, error) {
	grad, err := pipeline.ParseYear(v.GradYear)
	if err != nil {
		return Result{}, err
	}
	res := Result{Values: v, Year: grad + collegeYears}

	if v.Education == EducationHighSchool {
		res.HighSchool = true
		return res, nil
	}

	if strings.TrimSpace(v.Type) == "" || strings.TrimSpace(v.Length) == "" {
		return Result{}, errors.New("college type and length are required")
	}
	cost, err := pipeline.Predict(d.Model, res.Year, v.State, v.Type, v.Length)
	if err != nil {
		return Result{}, err
	}
	res.Cost = cost

	if t, ok := d.Trends[source.NormalizeType(v.Type)]; ok {
		res.TrendCost = pipeline.Project(t, res.Year)
		res.HasTrend = true
	}
	return res, nil
}
