package pipeline

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/theirongolddev/tuitioncast/internal/model"
	"github.com/theirongolddev/tuitioncast/internal/regress"
	"github.com/theirongolddev/tuitioncast/internal/source"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// Feature column names.
const (
	ColLength     = "Length"
	ColYearScaled = "Year_scaled"
	typePrefix    = "Type_"
	statePrefix   = "State_"
)

// ErrInvalidLength is returned when a program length label has no leading digit.
var ErrInvalidLength = errors.New("invalid program length")

// ParseLength reads the leading digit of a length label: "4-year" -> 4.
func ParseLength(label string) (int, error) {
	label = strings.TrimSpace(label)
	if label == "" || label[0] < '0' || label[0] > '9' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLength, label)
	}
	return int(label[0] - '0'), nil
}

type pivotKey struct {
	year   int
	state  string
	typ    string
	length string
}

// Pivot turns long-format expense rows into one row per (year, state, type,
// length). The first value seen per expense wins; a missing expense counts
// as zero. TotalCost is tuition plus room and board.
func Pivot(records []model.TuitionRecord) ([]model.FeatureRow, error) {
	type cell struct {
		tuition, room       float64
		hasTuition, hasRoom bool
	}
	cells := make(map[pivotKey]*cell)
	for _, r := range records {
		k := pivotKey{year: r.Year, state: r.State, typ: r.Type, length: r.Length}
		c, ok := cells[k]
		if !ok {
			c = &cell{}
			cells[k] = c
		}
		switch {
		case strings.EqualFold(strings.TrimSpace(r.Expense), model.ExpenseTuition):
			if !c.hasTuition {
				c.tuition, c.hasTuition = r.Value, true
			}
		case strings.EqualFold(strings.TrimSpace(r.Expense), model.ExpenseRoomBoard):
			if !c.hasRoom {
				c.room, c.hasRoom = r.Value, true
			}
		}
	}

	keys := make([]pivotKey, 0, len(cells))
	for k := range cells {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.year != b.year {
			return a.year < b.year
		}
		if a.state != b.state {
			return a.state < b.state
		}
		if a.typ != b.typ {
			return a.typ < b.typ
		}
		return a.length < b.length
	})

	rows := make([]model.FeatureRow, 0, len(keys))
	for _, k := range keys {
		length, err := ParseLength(k.length)
		if err != nil {
			return nil, fmt.Errorf("pivoting %d/%s/%s: %w", k.year, k.state, k.typ, err)
		}
		c := cells[k]
		rows = append(rows, model.FeatureRow{
			Year:      k.year,
			State:     k.state,
			Type:      k.typ,
			Length:    length,
			Tuition:   c.tuition,
			RoomBoard: c.room,
			TotalCost: c.tuition + c.room,
		})
	}
	return rows, nil
}

// Quantile returns the p-quantile of values using linear interpolation
// between the closest order statistics. values must be non-empty.
func Quantile(values []float64, p float64) float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)

	pos := p * float64(len(s)-1)
	lo := int(math.Floor(pos))
	if lo >= len(s)-1 {
		return s[len(s)-1]
	}
	frac := pos - float64(lo)
	return s[lo] + frac*(s[lo+1]-s[lo])
}

// RemoveOutliers drops rows whose TotalCost falls outside
// [Q1 - k*IQR, Q3 + k*IQR]. It returns the kept rows and the number dropped.
func RemoveOutliers(rows []model.FeatureRow, k float64) ([]model.FeatureRow, int) {
	if len(rows) == 0 {
		return rows, 0
	}
	totals := make([]float64, len(rows))
	for i, r := range rows {
		totals[i] = r.TotalCost
	}
	q1, q3 := Quantile(totals, 0.25), Quantile(totals, 0.75)
	iqr := q3 - q1
	lo, hi := q1-k*iqr, q3+k*iqr

	kept := make([]model.FeatureRow, 0, len(rows))
	for _, r := range rows {
		if r.TotalCost > hi || r.TotalCost < lo {
			continue
		}
		kept = append(kept, r)
	}
	return kept, len(rows) - len(kept)
}

// Schema is the ordered feature layout: Length, Year_scaled, one-hot Type
// columns, then one-hot State columns. A model is only ever fed vectors
// built from the schema it was trained with.
type Schema struct {
	BaseYear int
	Columns  []string
	types    []string
	states   []string
	index    map[string]int
}

// NewSchema derives the feature layout from pivoted rows.
func NewSchema(rows []model.FeatureRow, baseYear int) *Schema {
	typeSet := make(map[string]struct{})
	stateSet := make(map[string]struct{})
	for _, r := range rows {
		typeSet[r.Type] = struct{}{}
		stateSet[r.State] = struct{}{}
	}
	cols := []string{ColLength, ColYearScaled}
	for _, t := range sortedKeys(typeSet) {
		cols = append(cols, typePrefix+t)
	}
	for _, s := range sortedKeys(stateSet) {
		cols = append(cols, statePrefix+s)
	}
	s, _ := SchemaFromColumns(cols, baseYear)
	return s
}

// SchemaFromColumns rebuilds a schema from stored column names.
func SchemaFromColumns(cols []string, baseYear int) (*Schema, error) {
	if len(cols) < 2 || cols[0] != ColLength || cols[1] != ColYearScaled {
		return nil, fmt.Errorf("schema must start with %s, %s", ColLength, ColYearScaled)
	}
	s := &Schema{
		BaseYear: baseYear,
		Columns:  append([]string(nil), cols...),
		index:    make(map[string]int, len(cols)),
	}
	for i, c := range cols {
		if _, dup := s.index[c]; dup {
			return nil, fmt.Errorf("schema has duplicate column %q", c)
		}
		s.index[c] = i
		switch {
		case strings.HasPrefix(c, typePrefix):
			s.types = append(s.types, strings.TrimPrefix(c, typePrefix))
		case strings.HasPrefix(c, statePrefix):
			s.states = append(s.states, strings.TrimPrefix(c, statePrefix))
		}
	}
	return s, nil
}

// Types returns the school types known to the schema.
func (s *Schema) Types() []string { return append([]string(nil), s.types...) }

// States returns the states known to the schema.
func (s *Schema) States() []string { return append([]string(nil), s.states...) }

// row fills dst with the encoded features of one entry.
func (s *Schema) row(dst []float64, year int, state, typ string, length int) error {
	for i := range dst {
		dst[i] = 0
	}
	ti, ok := s.index[typePrefix+typ]
	if !ok {
		return fmt.Errorf("%w: school type %q", ErrUnknownCategory, typ)
	}
	si, ok := s.index[statePrefix+state]
	if !ok {
		return fmt.Errorf("%w: state %q", ErrUnknownCategory, state)
	}
	dst[0] = float64(length)
	dst[1] = float64(year - s.BaseYear)
	dst[ti] = 1
	dst[si] = 1
	return nil
}

// Encode builds the design matrix and target column for rows.
func (s *Schema) Encode(rows []model.FeatureRow) (*mat.Dense, *mat.Dense, error) {
	if len(rows) == 0 {
		return nil, nil, regress.ErrEmptyInput
	}
	x := mat.NewDense(len(rows), len(s.Columns), nil)
	y := mat.NewDense(len(rows), 1, nil)
	buf := make([]float64, len(s.Columns))
	for i, r := range rows {
		if err := s.row(buf, r.Year, r.State, r.Type, r.Length); err != nil {
			return nil, nil, err
		}
		x.SetRow(i, buf)
		y.Set(i, 0, r.TotalCost)
	}
	return x, y, nil
}

// Input builds a single zero-filled inference row with the matching flags set.
// The school type is canonicalised; the state is matched case-insensitively.
func (s *Schema) Input(year int, state, typ, length string) (*mat.Dense, error) {
	l, err := ParseLength(length)
	if err != nil {
		return nil, err
	}
	st := strings.TrimSpace(state)
	for _, known := range s.states {
		if strings.EqualFold(known, st) {
			st = known
			break
		}
	}
	buf := make([]float64, len(s.Columns))
	if err := s.row(buf, year, st, source.NormalizeType(typ), l); err != nil {
		return nil, err
	}
	return mat.NewDense(1, len(buf), buf), nil
}

// TrainOptions controls the regression pipeline.
type TrainOptions struct {
	Name         string
	BaseYear     int
	TestFraction float64
	Seed         uint64
	OutlierK     float64
	Logger       *zap.Logger
}

// DefaultTrainOptions mirrors the defaults written to a fresh config.
func DefaultTrainOptions() TrainOptions {
	return TrainOptions{
		Name:         "default",
		BaseYear:     2000,
		TestFraction: 0.3,
		Seed:         42,
		OutlierK:     1.5,
	}
}

// TrainResult holds the fitted model and pipeline counters.
type TrainResult struct {
	Model    model.RegressionModel
	Pivoted  int
	Outliers int
}

// Train runs pivot -> outlier trim -> one-hot encode -> split -> fit -> score.
func Train(records []model.TuitionRecord, opts TrainOptions) (*TrainResult, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	rows, err := Pivot(records)
	if err != nil {
		return nil, err
	}
	kept, dropped := RemoveOutliers(rows, opts.OutlierK)
	log.Debug("pivoted regression rows",
		zap.Int("rows", len(rows)),
		zap.Int("outliers", dropped))

	schema := NewSchema(kept, opts.BaseYear)
	x, y, err := schema.Encode(kept)
	if err != nil {
		return nil, fmt.Errorf("encoding features: %w", err)
	}

	train, test, err := regress.Split(len(kept), opts.TestFraction, opts.Seed)
	if err != nil {
		return nil, err
	}
	xTrain, yTrain := regress.Rows(x, train), regress.Rows(y, train)
	xTest, yTest := regress.Rows(x, test), regress.Rows(y, test)

	ols := regress.NewOLS()
	if err := ols.Fit(xTrain, yTrain); err != nil {
		return nil, fmt.Errorf("fitting model: %w", err)
	}
	r2, err := ols.Score(xTest, yTest)
	if err != nil {
		return nil, fmt.Errorf("scoring model: %w", err)
	}
	log.Debug("fitted regression",
		zap.Int("features", len(schema.Columns)),
		zap.Int("train", len(train)),
		zap.Int("test", len(test)),
		zap.Float64("r2", r2))

	return &TrainResult{
		Model: model.RegressionModel{
			Name:      opts.Name,
			Columns:   schema.Columns,
			BaseYear:  opts.BaseYear,
			Intercept: ols.Intercept(),
			Coef:      ols.Coef(),
			R2:        r2,
			TrainRows: len(train),
			TestRows:  len(test),
			TrainedAt: time.Now().UTC(),
		},
		Pivoted:  len(rows),
		Outliers: dropped,
	}, nil
}

// Predict evaluates a stored model for one (year, state, type, length) query.
func Predict(m model.RegressionModel, year int, state, typ, length string) (float64, error) {
	schema, err := SchemaFromColumns(m.Columns, m.BaseYear)
	if err != nil {
		return 0, fmt.Errorf("model %q: %w", m.Name, err)
	}
	if len(m.Coef) != len(schema.Columns) {
		return 0, fmt.Errorf("model %q: %w", m.Name, regress.ErrShapeMismatch)
	}
	x, err := schema.Input(year, state, typ, length)
	if err != nil {
		return 0, err
	}
	preds, err := regress.FromParams(m.Intercept, m.Coef).Predict(x)
	if err != nil {
		return 0, err
	}
	return preds[0], nil
}

// LengthLabels returns the distinct program length labels in records, sorted.
func LengthLabels(records []model.TuitionRecord) []string {
	set := make(map[string]struct{})
	for _, r := range records {
		if r.Length != "" {
			set[r.Length] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// StateNames returns the distinct states in records, sorted.
func StateNames(records []model.TuitionRecord) []string {
	set := make(map[string]struct{})
	for _, r := range records {
		if r.State != "" {
			set[r.State] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
