package regress

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// defaultRcond is the relative singular value cutoff used to pick the rank.
const defaultRcond = 1e-10

// OLS is an ordinary least squares model with an intercept.
//
// The intercept is handled by centring x and y before solving, and the
// centred system is solved through a thin SVD truncated at its numerical
// rank. Full one-hot encodings are collinear with the intercept, so the
// minimum-norm solution is returned; predictions are unaffected by which
// solution is chosen.
type OLS struct {
	Rcond float64

	intercept float64
	coef      []float64
	fitted    bool
}

var _ Model = (*OLS)(nil)

// NewOLS returns an unfitted model.
func NewOLS() *OLS {
	return &OLS{Rcond: defaultRcond}
}

// FromParams rebuilds a fitted model from stored parameters.
func FromParams(intercept float64, coef []float64) *OLS {
	c := make([]float64, len(coef))
	copy(c, coef)
	return &OLS{Rcond: defaultRcond, intercept: intercept, coef: c, fitted: true}
}

// Fit estimates the intercept and coefficients.
func (o *OLS) Fit(x, y mat.Matrix) error {
	n, p := x.Dims()
	yn, yc := y.Dims()
	if n == 0 || p == 0 {
		return ErrEmptyInput
	}
	if yn != n || yc != 1 {
		return fmt.Errorf("%w: x is %dx%d, y is %dx%d", ErrShapeMismatch, n, p, yn, yc)
	}

	yv := mat.Col(nil, 0, y)
	yMean := stat.Mean(yv, nil)

	xMeans := make([]float64, p)
	xc := mat.NewDense(n, p, nil)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, x)
		m := stat.Mean(col, nil)
		xMeans[j] = m
		for i := 0; i < n; i++ {
			xc.Set(i, j, col[i]-m)
		}
	}
	ycent := make([]float64, n)
	for i, v := range yv {
		ycent[i] = v - yMean
	}

	coef := make([]float64, p)
	var svd mat.SVD
	if ok := svd.Factorize(xc, mat.SVDThin); !ok {
		return fmt.Errorf("regress: SVD factorization failed")
	}
	rcond := o.Rcond
	if rcond <= 0 {
		rcond = defaultRcond
	}
	// All-constant columns leave nothing to solve; coefficients stay zero.
	if rank := svd.Rank(rcond); rank > 0 {
		var beta mat.VecDense
		svd.SolveVecTo(&beta, mat.NewVecDense(n, ycent), rank)
		for j := range coef {
			coef[j] = beta.AtVec(j)
		}
	}

	intercept := yMean
	for j, b := range coef {
		intercept -= b * xMeans[j]
	}

	o.coef = coef
	o.intercept = intercept
	o.fitted = true
	return nil
}

// Predict returns x·coef + intercept for each row of x.
func (o *OLS) Predict(x mat.Matrix) ([]float64, error) {
	if !o.fitted {
		return nil, ErrNotFitted
	}
	n, p := x.Dims()
	if p != len(o.coef) {
		return nil, fmt.Errorf("%w: model has %d features, input has %d", ErrShapeMismatch, len(o.coef), p)
	}
	if n == 0 {
		return nil, ErrEmptyInput
	}

	var out mat.VecDense
	out.MulVec(x, mat.NewVecDense(p, o.coef))
	preds := make([]float64, n)
	for i := range preds {
		preds[i] = out.AtVec(i) + o.intercept
	}
	return preds, nil
}

// Score returns the coefficient of determination R² of the predictions on x against y.
func (o *OLS) Score(x, y mat.Matrix) (float64, error) {
	preds, err := o.Predict(x)
	if err != nil {
		return 0, err
	}
	yn, yc := y.Dims()
	if yn != len(preds) || yc != 1 {
		return 0, fmt.Errorf("%w: %d predictions, y is %dx%d", ErrShapeMismatch, len(preds), yn, yc)
	}
	return stat.RSquaredFrom(preds, mat.Col(nil, 0, y), nil), nil
}

// Intercept returns the fitted intercept.
func (o *OLS) Intercept() float64 { return o.intercept }

// Coef returns a copy of the fitted coefficients.
func (o *OLS) Coef() []float64 {
	c := make([]float64, len(o.coef))
	copy(c, o.coef)
	return c
}
