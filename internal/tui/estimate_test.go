package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tuitioncast/internal/model"
	"github.com/theirongolddev/tuitioncast/internal/pipeline"
	"github.com/theirongolddev/tuitioncast/internal/source"
)

func testDataset() *Dataset {
	return &Dataset{
		States:  []string{"Ohio", "Texas"},
		Types:   []string{"Private", "Public In-State"},
		Lengths: []string{"2-year", "4-year"},
		Model: model.RegressionModel{
			Name:      "default",
			Columns:   []string{"Length", "Year_scaled", "Type_Private", "Type_Public In-State", "State_Ohio", "State_Texas"},
			BaseYear:  2000,
			Intercept: 1000,
			Coef:      []float64{2000, 500, 20000, 5000, 300, 0},
			R2:        0.91,
		},
		Trends: map[string]model.CategoryTrend{
			"Private": {Category: "Private", FirstYear: 2015, LastYear: 2020, LastCost: 40000, AvgDelta: 1000, Years: 6},
		},
	}
}

func TestEstimateCollege(t *testing.T) {
	got, err := Estimate(FormValues{
		State: "Ohio", GradYear: "2030", Education: EducationCollege,
		Type: "private", Length: "4-year",
	}, testDataset())
	require.NoError(t, err)

	assert.Equal(t, 2034, got.Year)
	// 1000 + 4*2000 + 34*500 + 20000 + 300
	assert.InDelta(t, 46300, got.Cost, 1e-9)
	require.True(t, got.HasTrend)
	assert.InDelta(t, 54000, got.TrendCost, 1e-9)
	assert.False(t, got.HighSchool)
}

func TestEstimateHighSchoolIsFree(t *testing.T) {
	got, err := Estimate(FormValues{
		State: "Texas", GradYear: "2027", Education: EducationHighSchool,
	}, testDataset())
	require.NoError(t, err)
	assert.True(t, got.HighSchool)
	assert.Equal(t, 2031, got.Year)
	assert.Zero(t, got.Cost)
	assert.False(t, got.HasTrend)
}

func TestEstimateWithoutTrend(t *testing.T) {
	got, err := Estimate(FormValues{
		State: "Texas", GradYear: "2030", Education: EducationCollege,
		Type: "Public In-State", Length: "2-year",
	}, testDataset())
	require.NoError(t, err)
	// 1000 + 2*2000 + 34*500 + 5000
	assert.InDelta(t, 27000, got.Cost, 1e-9)
	assert.False(t, got.HasTrend)
}

func TestEstimateErrors(t *testing.T) {
	d := testDataset()

	_, err := Estimate(FormValues{GradYear: "20x0", Education: EducationCollege}, d)
	assert.ErrorIs(t, err, pipeline.ErrInvalidYear)

	_, err = Estimate(FormValues{State: "Ohio", GradYear: "2030", Education: EducationCollege}, d)
	assert.Error(t, err)

	_, err = Estimate(FormValues{
		State: "Atlantis", GradYear: "2030", Education: EducationCollege,
		Type: "Private", Length: "4-year",
	}, d)
	assert.ErrorIs(t, err, pipeline.ErrUnknownCategory)
}

func TestValidateGradYear(t *testing.T) {
	assert.NoError(t, validateGradYear("2025"))
	assert.NoError(t, validateGradYear(" 2040 "))
	assert.EqualError(t, validateGradYear("2024"), "year must be 2025 or later")
	assert.EqualError(t, validateGradYear("twenty"), "year must be digits only")
	assert.EqualError(t, validateGradYear("-2030"), "year must be digits only")
}

func TestNewDatasetPrefersSchema(t *testing.T) {
	res := &source.OverallResult{Records: []model.TuitionRecord{
		{Year: 2015, State: "Ohio", Type: "Private", Length: "4-year", Expense: model.ExpenseTuition, Value: 30000},
		{Year: 2015, State: "Maine", Type: "Private", Length: "2-year", Expense: model.ExpenseRoomBoard, Value: 9000},
	}}
	trends := map[string]model.CategoryTrend{"Private": {Category: "Private"}}

	d := NewDataset(res, testDataset().Model, trends)
	assert.Equal(t, []string{"Ohio", "Texas"}, d.States)
	assert.Equal(t, []string{"Private", "Public In-State"}, d.Types)
	assert.Equal(t, []string{"2-year", "4-year"}, d.Lengths)

	bare := NewDataset(res, model.RegressionModel{}, trends)
	assert.Equal(t, []string{"Maine", "Ohio"}, bare.States)
	assert.Equal(t, []string{"Private"}, bare.Types)
}
