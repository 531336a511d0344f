// Package model defines domain types for tuitioncast datasets and forecasts.
package model

// Expense labels used by the overall dataset.
const (
	ExpenseTuition   = "Fees/Tuition"
	ExpenseRoomBoard = "Room/Board"
)

// TuitionRecord is one row of the overall (state-level) dataset.
type TuitionRecord struct {
	Year    int
	State   string
	Type    string // canonical school type, e.g. "Public In-State"
	Length  string // raw program length, e.g. "4-year"
	Expense string
	Value   float64
}

// ProgramRecord is one row of a graduate or undergraduate program dataset.
type ProgramRecord struct {
	Year    int
	Program string
	Cost    float64
}

// YearCost is a single (year, cost) observation for a category.
type YearCost struct {
	Category string
	Year     int
	Cost     float64
}
