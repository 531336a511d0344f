// Package regress implements ordinary least squares fitting on gonum matrices.
package regress

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Fit and prediction failures.
var (
	ErrEmptyInput    = errors.New("regress: empty input")
	ErrShapeMismatch = errors.New("regress: shape mismatch")
	ErrNotFitted     = errors.New("regress: model not fitted")
)

// Model is a linear regression fitted on a design matrix x (n×p) and a
// target column y (n×1).
type Model interface {
	Fit(x, y mat.Matrix) error
	Predict(x mat.Matrix) ([]float64, error)
	Score(x, y mat.Matrix) (float64, error)
	Intercept() float64
	Coef() []float64
}
