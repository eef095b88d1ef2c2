// SPDX-License-Identifier: MIT

package lu_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparsix/lu"
	"github.com/katalvlaran/sparsix/spmat"
)

// reValue returns a copy of m with the same pattern and fresh values. The
// diagonal stays dominant so the recorded pivot sequence remains valid.
func reValue(t *testing.T, rng *rand.Rand, m *spmat.Matrix[float64]) *spmat.Matrix[float64] {
	t.Helper()
	out, err := spmat.New[float64](m.NCols, m.NRows, m.MaxNZ)
	require.NoError(t, err)
	for j := 0; j < m.NCols; j++ {
		var rows []int
		var vals []float64
		for p := m.ColPtr[j]; p < m.ColPtr[j+1]; p++ {
			i := m.RowInd[p]
			rows = append(rows, i)
			if i == j {
				vals = append(vals, m.Values[p]+rng.Float64())
			} else {
				vals = append(vals, m.Values[p]*(rng.Float64()*0.5+0.5))
			}
		}
		require.NoError(t, out.SetColumn(j, rows, vals))
	}

	return out
}

func TestRefactor_MatchesFreshFactorization(t *testing.T) {
	rng := rand.New(rand.NewSource(23))
	for trial := 0; trial < 10; trial++ {
		n := 5 + rng.Intn(30)
		a1 := randDiagDominant(t, rng, n, 0.25)
		a2 := reValue(t, rng, a1)

		reused, err := lu.NewNumeric[float64](n)
		require.NoError(t, err)
		require.NoError(t, reused.Factorize(a1))
		require.NoError(t, reused.Refactor(a2))

		fresh, err := lu.NewNumeric[float64](n)
		require.NoError(t, err)
		require.NoError(t, fresh.Factorize(a2))

		// Same pattern plus diagonal dominance means identical pivots, so
		// the refactored factors must equal a from-scratch factorization.
		require.Equal(t, fresh.RowPerm(), reused.RowPerm(), "trial %d", trial)
		rl, fl := reused.L(), fresh.L()
		ru, fu := reused.U(), fresh.U()
		require.Equal(t, fl.ColPtr, rl.ColPtr)
		require.Equal(t, fu.ColPtr, ru.ColPtr)
		assert.Equal(t, fl.RowInd[:fl.NNZ()], rl.RowInd[:rl.NNZ()])
		assert.Equal(t, fu.RowInd[:fu.NNZ()], ru.RowInd[:ru.NNZ()])
		for p := 0; p < fl.NNZ(); p++ {
			assert.InDelta(t, fl.Values[p], rl.Values[p], 1e-12)
		}
		for p := 0; p < fu.NNZ(); p++ {
			assert.InDelta(t, fu.Values[p], ru.Values[p], 1e-12)
		}
	}
}

func TestRefactor_SolveCycles(t *testing.T) {
	// The Newton-loop shape: factorize once, then keep refactoring as the
	// values drift while the pattern holds.
	rng := rand.New(rand.NewSource(31))
	n := 20
	a := randDiagDominant(t, rng, n, 0.3)

	num, err := lu.NewNumeric[float64](n)
	require.NoError(t, err)
	require.NoError(t, num.Factorize(a))

	b := make([]float64, n)
	x := make([]float64, n)
	for cycle := 0; cycle < 5; cycle++ {
		a = reValue(t, rng, a)
		require.NoError(t, num.Refactor(a))
		for i := range b {
			b[i] = rng.NormFloat64()
		}
		require.NoError(t, num.Solve(b, x))

		ax := matVec(a, x)
		for i := range b {
			assert.InDelta(t, b[i], ax[i], 1e-10, "cycle %d", cycle)
		}
	}
}

func TestRefactor_WithAMDOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(37))
	n := 30
	a := randDiagDominant(t, rng, n, 0.15)

	num, err := lu.NewNumeric[float64](n, lu.WithAMD())
	require.NoError(t, err)
	require.NoError(t, num.Factorize(a))

	a2 := reValue(t, rng, a)
	require.NoError(t, num.Refactor(a2))

	b := make([]float64, n)
	for i := range b {
		b[i] = rng.NormFloat64()
	}
	x := make([]float64, n)
	require.NoError(t, num.Solve(b, x))

	ax := matVec(a2, x)
	for i := range b {
		assert.InDelta(t, b[i], ax[i], 1e-10)
	}
}

func TestRefactor_PatternMismatch(t *testing.T) {
	a := fromDense(t, [][]float64{
		{4, 1},
		{0, 3},
	})
	b := fromDense(t, [][]float64{
		{4, 0},
		{1, 3},
	})

	num, err := lu.NewNumeric[float64](2)
	require.NoError(t, err)
	require.NoError(t, num.Factorize(a))
	assert.ErrorIs(t, num.Refactor(b), lu.ErrPatternMismatch)

	// Same pattern, new values: accepted.
	a2 := fromDense(t, [][]float64{
		{5, 2},
		{0, 6},
	})
	assert.NoError(t, num.Refactor(a2))
}

func TestRefactor_WithoutPatternCheck(t *testing.T) {
	a := fromDense(t, [][]float64{
		{4, 1},
		{1, 3},
	})
	num, err := lu.NewNumeric[float64](2, lu.WithoutPatternCheck())
	require.NoError(t, err)
	require.NoError(t, num.Factorize(a))

	// The caller owns pattern stability; a same-pattern matrix refactors
	// without the hash comparison.
	a2 := fromDense(t, [][]float64{
		{7, 2},
		{3, 5},
	})
	assert.NoError(t, num.Refactor(a2))
}

func TestRefactor_RequiresFactorization(t *testing.T) {
	num, err := lu.NewNumeric[float64](2)
	require.NoError(t, err)
	a := fromDense(t, [][]float64{
		{1, 0},
		{0, 1},
	})
	assert.ErrorIs(t, num.Refactor(a), lu.ErrNotFactorized)
	assert.ErrorIs(t, num.Refactor(nil), lu.ErrNilMatrix)
}
