// SPDX-License-Identifier: MIT

package lu

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/katalvlaran/sparsix/spmat"
)

// Numeric is the numeric factorization context: it owns the L and U
// factors, the permutation vectors, and every workspace the factorization
// loop touches, so a context allocated once per problem dimension serves
// an arbitrary number of Factorize/Refactor/Solve cycles without further
// allocation.
//
// The reachability arena xi holds one row of length n per factorization
// column; row k persists the topologically ordered reachable set of column
// k between Factorize and Refactor. Together with topvec (the per-column
// offset where that set begins) and the pivot sequence p, it is the
// symbolic state whose reuse makes refactorization cheap.
type Numeric[T spmat.Scalar] struct {
	n int

	l *spmat.Matrix[T] // unit lower triangular factor
	u *spmat.Matrix[T] // upper triangular factor

	xi     []int // n×n reachability arena, one row per column
	topvec []int // per-column start offset of the reachable set in xi
	pinv   []int // original row → pivot step; -1 while unpivoted
	p      []int // pivot step → original row
	q      []int // column ordering (pivot step → column); nil = identity
	w      []T   // dense scattered solution workspace

	opts       Options
	factorized bool
	hash       uint64 // pattern hash of the factorized matrix
}

// NewNumeric allocates a factorization context for dimension n. The L and
// U factors are sized conservatively at n(n+1)/2 nonzeros each (worst-case
// triangular fill), so factorization never reallocates.
func NewNumeric[T spmat.Scalar](n int, opts ...Option) (*Numeric[T], error) {
	if n <= 0 {
		return nil, fmt.Errorf("lu: NewNumeric(%d): %w", n, ErrBadDimension)
	}

	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.ColPerm != nil {
		if err := checkPerm(o.ColPerm, n); err != nil {
			return nil, err
		}
	}

	maxnz := n * (n + 1) / 2
	l, err := spmat.New[T](n, n, maxnz)
	if err != nil {
		return nil, fmt.Errorf("lu: NewNumeric(%d): %w", n, err)
	}
	u, err := spmat.New[T](n, n, maxnz)
	if err != nil {
		return nil, fmt.Errorf("lu: NewNumeric(%d): %w", n, err)
	}

	nm := &Numeric[T]{
		n:      n,
		l:      l,
		u:      u,
		xi:     make([]int, n*n),
		topvec: make([]int, n),
		pinv:   make([]int, n),
		p:      make([]int, n),
		w:      make([]T, n),
		opts:   o,
	}
	if o.ColPerm != nil {
		nm.q = append([]int(nil), o.ColPerm...)
	}

	return nm, nil
}

// N reports the context's dimension.
func (nm *Numeric[T]) N() int { return nm.n }

// Factorized reports whether the context holds a valid factorization.
func (nm *Numeric[T]) Factorized() bool { return nm.factorized }

// L exposes the unit lower triangular factor. Read-only: mutating it
// invalidates the context.
func (nm *Numeric[T]) L() *spmat.Matrix[T] { return nm.l }

// U exposes the upper triangular factor. Read-only, as with L.
func (nm *Numeric[T]) U() *spmat.Matrix[T] { return nm.u }

// RowPerm returns a copy of p: pivot step → original row.
func (nm *Numeric[T]) RowPerm() []int { return append([]int(nil), nm.p...) }

// RowPermInverse returns a copy of pinv: original row → pivot step.
func (nm *Numeric[T]) RowPermInverse() []int { return append([]int(nil), nm.pinv...) }

// ColOrdering returns a copy of the column ordering in effect, or nil for
// the identity. With WithAMD the ordering exists only after the first
// Factorize.
func (nm *Numeric[T]) ColOrdering() []int {
	if nm.q == nil {
		return nil
	}

	return append([]int(nil), nm.q...)
}

// reachRow returns the arena row persisting column k's reachable set.
func (nm *Numeric[T]) reachRow(k int) []int {
	return nm.xi[k*nm.n : (k+1)*nm.n]
}

// checkPerm verifies that q is a bijection on 0..n-1.
func checkPerm(q []int, n int) error {
	if len(q) != n {
		return fmt.Errorf("lu: ordering has length %d, want %d: %w", len(q), n, ErrBadOrdering)
	}
	seen := make([]bool, n)
	for k, col := range q {
		if col < 0 || col >= n || seen[col] {
			return fmt.Errorf("lu: ordering entry %d (%d): %w", k, col, ErrBadOrdering)
		}
		seen[col] = true
	}

	return nil
}

// modulus is the pivot-magnitude measure: absolute value for real
// scalars, complex modulus otherwise.
func modulus[T spmat.Scalar](v T) float64 {
	switch x := any(v).(type) {
	case float64:
		return math.Abs(x)
	case complex128:
		return cmplx.Abs(x)
	}

	return 0 // unreachable: Scalar admits exactly the cases above
}

// patternHash folds a matrix's column pointers and row indices into an
// FNV-1a style checksum. Refactor compares it against the hash recorded by
// Factorize; collisions are possible in principle but harmless in
// practice compared to the silent corruption an unchecked mismatch causes.
func patternHash[T spmat.Scalar](a *spmat.Matrix[T]) uint64 {
	const prime = 1099511628211
	h := uint64(14695981039346656037)
	for _, v := range a.ColPtr {
		h = (h ^ uint64(v)) * prime
	}
	for _, v := range a.RowInd[:a.NNZ()] {
		h = (h ^ uint64(v)) * prime
	}

	return h
}
