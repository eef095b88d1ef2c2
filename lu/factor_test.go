// SPDX-License-Identifier: MIT

package lu_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sparsix/lu"
	"github.com/katalvlaran/sparsix/spmat"
)

// fromDense builds a CSC matrix from a dense row-major table.
func fromDense(t *testing.T, d [][]float64) *spmat.Matrix[float64] {
	t.Helper()
	nr, nc := len(d), len(d[0])
	nnz := 0
	for _, row := range d {
		for _, v := range row {
			if v != 0 {
				nnz++
			}
		}
	}
	m, err := spmat.New[float64](nc, nr, nnz)
	require.NoError(t, err)
	for j := 0; j < nc; j++ {
		var rows []int
		var vals []float64
		for i := 0; i < nr; i++ {
			if d[i][j] != 0 {
				rows = append(rows, i)
				vals = append(vals, d[i][j])
			}
		}
		require.NoError(t, m.SetColumn(j, rows, vals))
	}

	return m
}

// fromDenseComplex mirrors fromDense with zero imaginary parts.
func fromDenseComplex(t *testing.T, d [][]float64) *spmat.Matrix[complex128] {
	t.Helper()
	nr, nc := len(d), len(d[0])
	nnz := 0
	for _, row := range d {
		for _, v := range row {
			if v != 0 {
				nnz++
			}
		}
	}
	m, err := spmat.New[complex128](nc, nr, nnz)
	require.NoError(t, err)
	for j := 0; j < nc; j++ {
		var rows []int
		var vals []complex128
		for i := 0; i < nr; i++ {
			if d[i][j] != 0 {
				rows = append(rows, i)
				vals = append(vals, complex(d[i][j], 0))
			}
		}
		require.NoError(t, m.SetColumn(j, rows, vals))
	}

	return m
}

// matVec computes y = A·x for a CSC matrix.
func matVec(a *spmat.Matrix[float64], x []float64) []float64 {
	y := make([]float64, a.NRows)
	for j := 0; j < a.NCols; j++ {
		for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
			y[a.RowInd[p]] += a.Values[p] * x[j]
		}
	}

	return y
}

// randDiagDominant builds a random sparse strictly diagonally dominant
// matrix: guaranteed nonsingular, and threshold pivoting keeps the
// natural diagonal, which makes pivot sequences reproducible.
func randDiagDominant(t *testing.T, rng *rand.Rand, n int, density float64) *spmat.Matrix[float64] {
	t.Helper()
	cols := make([][]int, n)
	vals := make([][]float64, n)
	nnz := 0
	rowSum := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			if i != j && rng.Float64() < density {
				v := rng.Float64()*2 - 1
				cols[j] = append(cols[j], i)
				vals[j] = append(vals[j], v)
				rowSum[i] += 2 // loose bound on |off-diagonal| row mass
				nnz++
			}
		}
	}
	m, err := spmat.New[float64](n, n, nnz+n)
	require.NoError(t, err)
	for j := 0; j < n; j++ {
		rows := append([]int(nil), cols[j]...)
		values := append([]float64(nil), vals[j]...)
		rows = append(rows, j)
		values = append(values, rowSum[j]+1)
		require.NoError(t, m.SetColumn(j, rows, values))
	}

	return m
}

// gonumSolve is the dense oracle: solve A·x = b through gonum.
func gonumSolve(t *testing.T, a *spmat.Matrix[float64], b []float64) []float64 {
	t.Helper()
	n := a.NCols
	dense := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
			i := a.RowInd[p]
			dense.Set(i, j, dense.At(i, j)+a.Values[p])
		}
	}
	var x mat.VecDense
	require.NoError(t, x.SolveVec(dense, mat.NewVecDense(n, b)))

	return x.RawVector().Data
}

func TestNewNumeric_Validation(t *testing.T) {
	_, err := lu.NewNumeric[float64](0)
	assert.ErrorIs(t, err, lu.ErrBadDimension)

	_, err = lu.NewNumeric[float64](3, lu.WithOrdering([]int{0, 1}))
	assert.ErrorIs(t, err, lu.ErrBadOrdering, "short ordering")

	_, err = lu.NewNumeric[float64](3, lu.WithOrdering([]int{0, 0, 2}))
	assert.ErrorIs(t, err, lu.ErrBadOrdering, "repeated entry")

	assert.Panics(t, func() { lu.WithPivotTolerance(0) })
	assert.Panics(t, func() { lu.WithPivotTolerance(1.5) })
}

func TestFactorize_SolveSmall(t *testing.T) {
	a := fromDense(t, [][]float64{
		{4, 1, 0},
		{1, 3, 1},
		{0, 1, 2},
	})
	n, err := lu.NewNumeric[float64](3)
	require.NoError(t, err)
	require.NoError(t, n.Factorize(a))
	assert.True(t, n.Factorized())

	b := []float64{1, 2, 3}
	x := make([]float64, 3)
	require.NoError(t, n.Solve(b, x))

	ax := matVec(a, x)
	for i := range b {
		assert.InDelta(t, b[i], ax[i], 1e-12)
	}
}

func TestFactorize_RoundTripAgainstGonum(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 15; trial++ {
		n := 5 + rng.Intn(35)
		a := randDiagDominant(t, rng, n, 0.2)
		b := make([]float64, n)
		for i := range b {
			b[i] = rng.NormFloat64()
		}

		num, err := lu.NewNumeric[float64](n)
		require.NoError(t, err)
		require.NoError(t, num.Factorize(a))

		x := make([]float64, n)
		require.NoError(t, num.Solve(b, x))

		want := gonumSolve(t, a, b)
		for i := range want {
			assert.InDelta(t, want[i], x[i], 1e-8, "trial %d, x[%d]", trial, i)
		}
	}
}

func TestFactorize_PermutationInverse(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 10; trial++ {
		n := 3 + rng.Intn(30)
		a := randDiagDominant(t, rng, n, 0.3)
		num, err := lu.NewNumeric[float64](n)
		require.NoError(t, err)
		require.NoError(t, num.Factorize(a))

		p, pinv := num.RowPerm(), num.RowPermInverse()
		for i := 0; i < n; i++ {
			assert.Equal(t, i, p[pinv[i]], "p and pinv must be mutual inverses")
		}
	}
}

func TestFactorize_SingularZeroColumn(t *testing.T) {
	a := fromDense(t, [][]float64{
		{1, 0, 2},
		{3, 0, 0},
		{0, 0, 4},
	})
	num, err := lu.NewNumeric[float64](3)
	require.NoError(t, err)

	err = num.Factorize(a)
	assert.ErrorIs(t, err, lu.ErrSingular)
	assert.False(t, num.Factorized())

	// The context must refuse to solve or refactor with dead factors.
	x := make([]float64, 3)
	assert.ErrorIs(t, num.Solve([]float64{1, 1, 1}, x), lu.ErrNotFactorized)
	assert.ErrorIs(t, num.Refactor(a), lu.ErrNotFactorized)
}

func TestFactorize_DimensionChecks(t *testing.T) {
	num, err := lu.NewNumeric[float64](3)
	require.NoError(t, err)

	assert.ErrorIs(t, num.Factorize(nil), lu.ErrNilMatrix)

	bigger, err := spmat.New[float64](4, 4, 0)
	require.NoError(t, err)
	assert.ErrorIs(t, num.Factorize(bigger), lu.ErrDimensionMismatch)
}

func TestFactorize_ThresholdPivoting(t *testing.T) {
	// Column 0 holds 1 on the diagonal and 10 below. Strict partial
	// pivoting must take the 10; the default threshold (0.1) keeps the
	// natural diagonal because 1 >= 0.1·10.
	d := [][]float64{
		{1, 0},
		{10, 1},
	}

	def, err := lu.NewNumeric[float64](2)
	require.NoError(t, err)
	require.NoError(t, def.Factorize(fromDense(t, d)))
	assert.Equal(t, []int{0, 1}, def.RowPerm(), "threshold keeps the diagonal")

	strict, err := lu.NewNumeric[float64](2, lu.WithPivotTolerance(1))
	require.NoError(t, err)
	require.NoError(t, strict.Factorize(fromDense(t, d)))
	assert.Equal(t, 1, strict.RowPerm()[0], "strict pivoting takes the maximum")
}

func TestFactorize_ComplexParity(t *testing.T) {
	d := [][]float64{
		{4, 1, 0, 0},
		{1, 5, 2, 0},
		{0, 2, 6, 1},
		{1, 0, 1, 3},
	}
	b := []float64{1, -2, 3, 0.5}

	nr, err := lu.NewNumeric[float64](4)
	require.NoError(t, err)
	require.NoError(t, nr.Factorize(fromDense(t, d)))
	xr := make([]float64, 4)
	require.NoError(t, nr.Solve(b, xr))

	nc, err := lu.NewNumeric[complex128](4)
	require.NoError(t, err)
	require.NoError(t, nc.Factorize(fromDenseComplex(t, d)))
	bc := make([]complex128, 4)
	for i, v := range b {
		bc[i] = complex(v, 0)
	}
	xc := make([]complex128, 4)
	require.NoError(t, nc.Solve(bc, xc))

	// Identical factorization pattern and identical solutions.
	assert.Equal(t, nr.RowPerm(), nc.RowPerm())
	assert.Equal(t, nr.L().ColPtr, nc.L().ColPtr)
	assert.Equal(t, nr.U().ColPtr, nc.U().ColPtr)
	for i := range xr {
		assert.InDelta(t, xr[i], real(xc[i]), 1e-12)
		assert.InDelta(t, 0, imag(xc[i]), 1e-12)
	}
}

func TestFactorize_WithAMD(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	n := 40
	a := randDiagDominant(t, rng, n, 0.1)
	b := make([]float64, n)
	for i := range b {
		b[i] = rng.NormFloat64()
	}

	num, err := lu.NewNumeric[float64](n, lu.WithAMD())
	require.NoError(t, err)
	require.NoError(t, num.Factorize(a))

	q := num.ColOrdering()
	require.NotNil(t, q)
	seen := make([]bool, n)
	for _, col := range q {
		require.False(t, seen[col])
		seen[col] = true
	}

	x := make([]float64, n)
	require.NoError(t, num.Solve(b, x))
	want := gonumSolve(t, a, b)
	for i := range want {
		assert.InDelta(t, want[i], x[i], 1e-8)
	}
}

func TestFactorize_AMDReducesArrowFill(t *testing.T) {
	// Arrow matrix with the hub first: the natural order fills L densely,
	// a minimum-degree order eliminates the hub last and keeps the factor
	// as sparse as the matrix.
	n := 25
	d := make([][]float64, n)
	for i := range d {
		d[i] = make([]float64, n)
		d[i][i] = float64(n)
	}
	for i := 1; i < n; i++ {
		d[0][i] = 1
		d[i][0] = 1
	}

	natural, err := lu.NewNumeric[float64](n)
	require.NoError(t, err)
	require.NoError(t, natural.Factorize(fromDense(t, d)))

	ordered, err := lu.NewNumeric[float64](n, lu.WithAMD())
	require.NoError(t, err)
	require.NoError(t, ordered.Factorize(fromDense(t, d)))

	assert.Less(t, ordered.L().NNZ(), natural.L().NNZ(),
		"AMD ordering must reduce fill-in on the arrow pattern")
}

func TestSolve_Validation(t *testing.T) {
	num, err := lu.NewNumeric[float64](3)
	require.NoError(t, err)

	x := make([]float64, 3)
	assert.ErrorIs(t, num.Solve([]float64{1, 2, 3}, x), lu.ErrNotFactorized)

	a := fromDense(t, [][]float64{{2, 0, 0}, {0, 2, 0}, {0, 0, 2}})
	require.NoError(t, num.Factorize(a))
	assert.ErrorIs(t, num.Solve([]float64{1, 2}, x), lu.ErrDimensionMismatch)
	assert.ErrorIs(t, num.Solve([]float64{1, 2, 3}, x[:2]), lu.ErrDimensionMismatch)
}
