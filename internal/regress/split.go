package regress

import (
	"fmt"
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Split shuffles 0..n-1 with a seeded generator and returns train and test
// indexes. The test share is rounded up, and both sides get at least one row.
func Split(n int, testFraction float64, seed uint64) (train, test []int, err error) {
	if n < 2 {
		return nil, nil, fmt.Errorf("%w: need at least 2 rows to split, have %d", ErrEmptyInput, n)
	}
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("regress: test fraction %.2f outside (0, 1)", testFraction)
	}

	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest >= n {
		nTest = n - 1
	}

	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	perm := r.Perm(n)
	return perm[nTest:], perm[:nTest], nil
}

// Rows copies the selected rows of m into a new matrix.
func Rows(m mat.Matrix, idx []int) *mat.Dense {
	_, c := m.Dims()
	out := mat.NewDense(len(idx), c, nil)
	for i, r := range idx {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(r, j))
		}
	}
	return out
}
