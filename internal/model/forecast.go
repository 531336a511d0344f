package model

import "time"

// CategoryTrend is the additive summary kept per category after building.
// It is immutable once built; reloading the source dataset replaces it.
type CategoryTrend struct {
	Category  string
	FirstYear int
	LastYear  int
	LastCost  float64
	AvgDelta  float64 // mean year-over-year dollar change, 0 with one year
	Years     int     // distinct years observed
}

// ProjectionPoint is one projected value on a category's trend line.
type ProjectionPoint struct {
	Year int
	Cost float64
}

// FeatureRow is one pivoted entry of the overall dataset used for regression.
type FeatureRow struct {
	Year      int
	State     string
	Type      string
	Length    int
	Tuition   float64
	RoomBoard float64
	TotalCost float64
}

// RegressionModel is a fitted least-squares model bound to its feature columns.
type RegressionModel struct {
	Name      string
	Columns   []string
	BaseYear  int
	Intercept float64
	Coef      []float64
	R2        float64
	TrainRows int
	TestRows  int
	TrainedAt time.Time
}

// ProjectionSeries is one category's trend with its projected points.
type ProjectionSeries struct {
	Kind     string
	Category string
	Trend    CategoryTrend
	Points   []ProjectionPoint
}
