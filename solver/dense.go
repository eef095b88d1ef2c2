// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sparsix/lu"
	"github.com/katalvlaran/sparsix/spmat"
)

// Dense is the gonum-backed dense LU strategy: the same four-verb
// contract, no sparsity exploitation. Useful as a reference oracle and
// for Jacobians small or full enough that dense arithmetic wins.
type Dense struct {
	n   int
	buf *mat.Dense
	lu  *mat.LU
}

var _ Interface = (*Dense)(nil)

// NewDense returns an uninitialized dense backend.
func NewDense() *Dense { return &Dense{} }

// Init sizes the dense buffer to a's shape.
func (d *Dense) Init(a *spmat.Matrix[float64]) error {
	if a == nil {
		return ErrNilMatrix
	}
	if a.NCols != a.NRows {
		return fmt.Errorf("solver: Init on %dx%d: %w", a.NRows, a.NCols, ErrDimensionMismatch)
	}
	d.n = a.NCols
	d.buf = mat.NewDense(d.n, d.n, nil)
	d.lu = &mat.LU{}

	return nil
}

// Factorize expands the CSC matrix into the dense buffer (duplicate
// entries accumulate, matching sparse semantics) and runs gonum's LU.
// An exactly singular matrix is reported as lu.ErrSingular, mirroring the
// sparse backend.
func (d *Dense) Factorize(a *spmat.Matrix[float64]) error {
	if d.buf == nil {
		return ErrNotInitialized
	}
	if a == nil {
		return ErrNilMatrix
	}
	if a.NCols != d.n || a.NRows != d.n {
		return fmt.Errorf("solver: Factorize on %dx%d, want %d: %w", a.NRows, a.NCols, d.n, ErrDimensionMismatch)
	}

	d.buf.Zero()
	for j := 0; j < d.n; j++ {
		for p := a.ColPtr[j]; p < a.ColPtr[j+1]; p++ {
			i := a.RowInd[p]
			d.buf.Set(i, j, d.buf.At(i, j)+a.Values[p])
		}
	}
	d.lu.Factorize(d.buf)
	if det := d.lu.Det(); det == 0 || math.IsNaN(det) {
		return fmt.Errorf("solver: Factorize: %w", lu.ErrSingular)
	}

	return nil
}

// Solve computes x with a·x = b through the gonum factors.
func (d *Dense) Solve(b, x []float64) error {
	if d.lu == nil {
		return ErrNotInitialized
	}
	if len(b) != d.n || len(x) != d.n {
		return fmt.Errorf("solver: Solve with len(b)=%d, len(x)=%d, want %d: %w", len(b), len(x), d.n, ErrDimensionMismatch)
	}

	var dst mat.VecDense
	if err := d.lu.SolveVecTo(&dst, false, mat.NewVecDense(d.n, b)); err != nil {
		return fmt.Errorf("solver: Solve: %w", err)
	}
	copy(x, dst.RawVector().Data)

	return nil
}

// Close releases the dense workspace.
func (d *Dense) Close() error {
	d.buf = nil
	d.lu = nil
	d.n = 0

	return nil
}
