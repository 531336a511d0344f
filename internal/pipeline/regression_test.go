package pipeline

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/tuitioncast/internal/model"
)

func TestParseLength(t *testing.T) {
	n, err := ParseLength("4-year")
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	n, err = ParseLength(" 2-year")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = ParseLength("four")
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = ParseLength("")
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestPivot(t *testing.T) {
	records := []model.TuitionRecord{
		{Year: 2015, State: "Ohio", Type: "Private", Length: "4-year", Expense: "Fees/Tuition", Value: 30000},
		{Year: 2015, State: "Ohio", Type: "Private", Length: "4-year", Expense: "Room/Board", Value: 10000},
		{Year: 2015, State: "Ohio", Type: "Private", Length: "4-year", Expense: "Fees/Tuition", Value: 99999},
		{Year: 2014, State: "Ohio", Type: "Public In-State", Length: "2-year", Expense: "fees/tuition", Value: 4000},
	}

	rows, err := Pivot(records)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Sorted by year first.
	assert.Equal(t, model.FeatureRow{
		Year: 2014, State: "Ohio", Type: "Public In-State", Length: 2,
		Tuition: 4000, RoomBoard: 0, TotalCost: 4000,
	}, rows[0])
	assert.Equal(t, model.FeatureRow{
		Year: 2015, State: "Ohio", Type: "Private", Length: 4,
		Tuition: 30000, RoomBoard: 10000, TotalCost: 40000,
	}, rows[1])

	_, err = Pivot([]model.TuitionRecord{{Year: 2015, Length: "n/a", Expense: "Fees/Tuition", Value: 1}})
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestQuantile(t *testing.T) {
	assert.InDelta(t, 2, Quantile([]float64{5, 1, 4, 2, 3}, 0.25), 1e-12)
	assert.InDelta(t, 4, Quantile([]float64{5, 1, 4, 2, 3}, 0.75), 1e-12)
	assert.InDelta(t, 1.75, Quantile([]float64{1, 2, 3, 4}, 0.25), 1e-12)
	assert.InDelta(t, 4, Quantile([]float64{1, 2, 3, 4}, 1), 1e-12)
	assert.InDelta(t, 7, Quantile([]float64{7}, 0.5), 1e-12)
}

func TestRemoveOutliers(t *testing.T) {
	var rows []model.FeatureRow
	for _, v := range []float64{10, 11, 12, 13, 100} {
		rows = append(rows, model.FeatureRow{TotalCost: v})
	}
	kept, dropped := RemoveOutliers(rows, 1.5)
	assert.Equal(t, 1, dropped)
	require.Len(t, kept, 4)
	for _, r := range kept {
		assert.NotEqual(t, 100.0, r.TotalCost)
	}

	kept, dropped = RemoveOutliers(nil, 1.5)
	assert.Empty(t, kept)
	assert.Zero(t, dropped)
}

func TestSchemaColumns(t *testing.T) {
	rows := []model.FeatureRow{
		{Year: 2010, State: "Texas", Type: "Public In-State", Length: 2},
		{Year: 2011, State: "Ohio", Type: "Private", Length: 4},
	}
	s := NewSchema(rows, 2000)
	assert.Equal(t, []string{
		"Length", "Year_scaled",
		"Type_Private", "Type_Public In-State",
		"State_Ohio", "State_Texas",
	}, s.Columns)
	assert.Equal(t, []string{"Private", "Public In-State"}, s.Types())
	assert.Equal(t, []string{"Ohio", "Texas"}, s.States())

	x, err := s.Input(2020, "ohio", "private", "4-year")
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 20, 1, 0, 1, 0}, x.RawRowView(0))

	_, err = s.Input(2020, "Nevada", "Private", "4-year")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
	_, err = s.Input(2020, "Ohio", "Community", "4-year")
	assert.True(t, errors.Is(err, ErrUnknownCategory))

	_, err = SchemaFromColumns([]string{"Year_scaled", "Length"}, 2000)
	assert.Error(t, err)
	_, err = SchemaFromColumns([]string{"Length", "Year_scaled", "State_A", "State_A"}, 2000)
	assert.Error(t, err)
}

// syntheticRecords builds noise-free data where total cost is an exact
// linear function of the encoded features.
func syntheticRecords() []model.TuitionRecord {
	typeOff := map[string]float64{"Private": 20000, "Public In-State": 0}
	stateOff := map[string]float64{"Ohio": 0, "Texas": 500, "Utah": 1000}
	lengths := map[string]float64{"2-year": 2, "4-year": 4}

	var out []model.TuitionRecord
	for year := 2010; year <= 2019; year++ {
		for typ, to := range typeOff {
			for st, so := range stateOff {
				for label, l := range lengths {
					tuition := 1000*l + 300*float64(year-2000) + to + so
					out = append(out,
						model.TuitionRecord{Year: year, State: st, Type: typ, Length: label, Expense: model.ExpenseTuition, Value: tuition},
						model.TuitionRecord{Year: year, State: st, Type: typ, Length: label, Expense: model.ExpenseRoomBoard, Value: 2000},
					)
				}
			}
		}
	}
	return out
}

func TestTrainAndPredict(t *testing.T) {
	opts := DefaultTrainOptions()
	res, err := Train(syntheticRecords(), opts)
	require.NoError(t, err)

	assert.Equal(t, 120, res.Pivoted)
	assert.Zero(t, res.Outliers)
	assert.Equal(t, 120, res.Model.TrainRows+res.Model.TestRows)
	assert.Equal(t, 36, res.Model.TestRows)
	assert.Len(t, res.Model.Coef, len(res.Model.Columns))
	assert.Greater(t, res.Model.R2, 0.999)

	got, err := Predict(res.Model, 2025, "ohio", "private", "4-year")
	require.NoError(t, err)
	assert.InDelta(t, 4000+300*25+20000+2000, got, 1e-6)

	got, err = Predict(res.Model, 2012, "Utah", "Public In-State", "2-year")
	require.NoError(t, err)
	assert.InDelta(t, 2000+300*12+1000+2000, got, 1e-6)

	_, err = Predict(res.Model, 2025, "Nevada", "Private", "4-year")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	_, err = Predict(res.Model, 2025, "Ohio", "Private", "four")
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestTrainDeterministic(t *testing.T) {
	a, err := Train(syntheticRecords(), DefaultTrainOptions())
	require.NoError(t, err)
	b, err := Train(syntheticRecords(), DefaultTrainOptions())
	require.NoError(t, err)
	assert.InDelta(t, a.Model.Intercept, b.Model.Intercept, 1e-9)
	assert.InDeltaSlice(t, a.Model.Coef, b.Model.Coef, 1e-9)
}

func TestPredictRejectsBrokenModel(t *testing.T) {
	m := model.RegressionModel{Name: "x", Columns: []string{"Length", "Year_scaled", "Type_A", "State_B"}, Coef: []float64{1}}
	_, err := Predict(m, 2020, "B", "A", "4-year")
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	recs := []model.TuitionRecord{
		{State: "Texas", Length: "4-year"},
		{State: "Ohio", Length: "2-year"},
		{State: "Ohio", Length: ""},
	}
	assert.Equal(t, []string{"2-year", "4-year"}, LengthLabels(recs))
	assert.Equal(t, []string{"Ohio", "Texas"}, StateNames(recs))
}
