package regress

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestOLS_RecoversExactCoefficients(t *testing.T) {
	// y = 3 + 2*x0 - 0.5*x1
	x := mat.NewDense(5, 2, []float64{
		1, 4,
		2, 1,
		3, 7,
		4, 2,
		5, 9,
	})
	y := mat.NewDense(5, 1, nil)
	for i := 0; i < 5; i++ {
		y.Set(i, 0, 3+2*x.At(i, 0)-0.5*x.At(i, 1))
	}

	m := NewOLS()
	require.NoError(t, m.Fit(x, y))

	assert.InDelta(t, 3.0, m.Intercept(), 1e-9)
	coef := m.Coef()
	require.Len(t, coef, 2)
	assert.InDelta(t, 2.0, coef[0], 1e-9)
	assert.InDelta(t, -0.5, coef[1], 1e-9)

	score, err := m.Score(x, y)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, score, 1e-12)
}

func TestOLS_CollinearOneHot(t *testing.T) {
	// Full one-hot (no dropped level) is collinear with the intercept.
	// Group A costs 10, group B costs 20, plus 1 per unit of x0.
	rows := [][]float64{
		{0, 1, 0},
		{1, 1, 0},
		{2, 1, 0},
		{0, 0, 1},
		{1, 0, 1},
		{2, 0, 1},
	}
	x := mat.NewDense(len(rows), 3, nil)
	y := mat.NewDense(len(rows), 1, nil)
	for i, r := range rows {
		x.SetRow(i, r)
		base := 10.0
		if r[2] == 1 {
			base = 20
		}
		y.Set(i, 0, base+r[0])
	}

	m := NewOLS()
	require.NoError(t, m.Fit(x, y))

	preds, err := m.Predict(mat.NewDense(2, 3, []float64{
		5, 1, 0,
		5, 0, 1,
	}))
	require.NoError(t, err)
	assert.InDelta(t, 15.0, preds[0], 1e-8)
	assert.InDelta(t, 25.0, preds[1], 1e-8)
}

func TestOLS_ConstantFeature(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{4, 4, 4})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})

	m := NewOLS()
	require.NoError(t, m.Fit(x, y))
	assert.InDelta(t, 2.0, m.Intercept(), 1e-12)
	assert.Equal(t, []float64{0}, m.Coef())
}

func TestOLS_Errors(t *testing.T) {
	m := NewOLS()
	_, err := m.Predict(mat.NewDense(1, 1, []float64{1}))
	assert.ErrorIs(t, err, ErrNotFitted)

	err = m.Fit(mat.NewDense(3, 1, []float64{1, 2, 3}), mat.NewDense(2, 1, []float64{1, 2}))
	assert.ErrorIs(t, err, ErrShapeMismatch)

	fitted := FromParams(1, []float64{2, 3})
	_, err = fitted.Predict(mat.NewDense(1, 1, []float64{1}))
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestFromParams(t *testing.T) {
	m := FromParams(100, []float64{10, -1})
	preds, err := m.Predict(mat.NewDense(1, 2, []float64{2, 5}))
	require.NoError(t, err)
	assert.InDelta(t, 115.0, preds[0], 1e-12)
}

func TestSplit(t *testing.T) {
	train, test, err := Split(10, 0.3, 42)
	require.NoError(t, err)
	assert.Len(t, test, 3)
	assert.Len(t, train, 7)

	all := append(append([]int{}, train...), test...)
	sort.Ints(all)
	for i, v := range all {
		assert.Equal(t, i, v)
	}

	train2, test2, err := Split(10, 0.3, 42)
	require.NoError(t, err)
	assert.Equal(t, train, train2, "same seed must give the same split")
	assert.Equal(t, test, test2)

	_, _, err = Split(1, 0.3, 1)
	assert.ErrorIs(t, err, ErrEmptyInput)
	_, _, err = Split(10, 1.5, 1)
	assert.Error(t, err)
}
