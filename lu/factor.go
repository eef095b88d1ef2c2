// SPDX-License-Identifier: MIT

package lu

import (
	"fmt"

	"github.com/katalvlaran/sparsix/amd"
	"github.com/katalvlaran/sparsix/spmat"
)

// spsolve solves L·x = a[:,col] restricted to the reachable set recorded
// in arena row k (row[top:n], already in topologically valid order),
// scattering the dense solution into nm.w. Columns whose row is not yet
// pivoted carry an implicit unit diagonal and contribute nothing below.
//
// Under Refactor pinv is already complete: rows with pinv[j] >= k read a
// stored unit diagonal of L (slot 0 for pinv[j] > k, the prior pass's
// value at the current lnz for pinv[j] == k), so the division is a no-op
// and the inner loop is empty. Identical patterns keep those slots at 1.
func (nm *Numeric[T]) spsolve(a *spmat.Matrix[T], col, k, top int) {
	xik := nm.reachRow(k)
	x := nm.w
	gp, gi, gx := nm.l.ColPtr, nm.l.RowInd, nm.l.Values
	n := nm.n

	// Clear exactly the scatter positions this column will touch.
	for p := top; p < n; p++ {
		x[xik[p]] = 0
	}
	for p := a.ColPtr[col]; p < a.ColPtr[col+1]; p++ {
		x[a.RowInd[p]] = a.Values[p]
	}
	for px := top; px < n; px++ {
		j := xik[px]
		jn := nm.pinv[j]
		if jn < 0 {
			continue // not yet a column of L
		}
		x[j] /= gx[gp[jn]]
		for p := gp[jn] + 1; p < gp[jn+1]; p++ {
			x[gi[p]] -= gx[p] * x[j]
		}
	}
}

// Factorize computes the LU factorization of a with threshold partial
// pivoting, recording per-column symbolic state (reachable sets, topvec,
// pivot sequence) for later reuse by Refactor.
//
// For each pivot step k, working column col = q[k] (or k):
//
//  1. reach: DFS over the columns of L built so far, from the pattern of
//     a[:,col]; the start offset is recorded in topvec[k].
//  2. spsolve: restricted sparse triangular solve into the dense
//     scattered workspace.
//  3. Partition reached rows: already-pivoted rows append to U (indexed
//     by pinv), the rest are pivot candidates.
//  4. Threshold pivoting: the maximum-modulus candidate wins, unless the
//     natural diagonal candidate col is unpivoted and within
//     PivotTolerance of that maximum, in which case col is kept to
//     preserve sparsity.
//  5. Store the pivot row into U, the remaining candidates into L scaled
//     by the pivot.
//
// L's row indices are recorded in original numbering during the loop and
// remapped through pinv once the full permutation is known.
//
// Fails with ErrSingular when a column has no structural candidate or the
// best candidate's magnitude is not positive; the context is then flagged
// unfactorized and Refactor/Solve refuse to run until a Factorize
// succeeds. Not parallelizable across columns: step k's pivot choice
// feeds every later column through pinv.
func (nm *Numeric[T]) Factorize(a *spmat.Matrix[T]) error {
	if a == nil {
		return ErrNilMatrix
	}
	n := nm.n
	if a.NCols != n || a.NRows != n {
		return fmt.Errorf("lu: Factorize on %dx%d, context dimension %d: %w", a.NRows, a.NCols, n, ErrDimensionMismatch)
	}
	nm.factorized = false

	// Fill-reducing ordering, computed once per context when requested.
	if nm.opts.UseAMD && nm.q == nil {
		pat, err := spmat.AddTranspose(a)
		if err != nil {
			return fmt.Errorf("lu: Factorize: %w", err)
		}
		q, err := amd.Order(pat)
		if err != nil {
			return fmt.Errorf("lu: Factorize: %w", err)
		}
		nm.q = q
	}

	lp, li, lx := nm.l.ColPtr, nm.l.RowInd, nm.l.Values
	up, ui, ux := nm.u.ColPtr, nm.u.RowInd, nm.u.Values
	x, pinv, pvec := nm.w, nm.pinv, nm.p
	lnz, unz := 0, 0

	for i := 0; i < n; i++ {
		x[i] = 0
		pinv[i] = -1
	}
	for k := 0; k <= n; k++ {
		lp[k] = 0
	}

	for k := 0; k < n; k++ {
		lp[k] = lnz
		up[k] = unz
		col := k
		if nm.q != nil {
			col = nm.q[k]
		}

		// Symbolic step, then the restricted triangular solve.
		top := nm.reach(a, col, k)
		nm.topvec[k] = top
		nm.spsolve(a, col, k, top)
		xik := nm.reachRow(k)

		// Pivot search over the not-yet-pivoted reachable rows; pivoted
		// rows belong to U.
		ipiv := -1
		amax := -1.0
		for p := top; p < n; p++ {
			i := xik[p]
			if pinv[i] < 0 {
				if t := modulus(x[i]); t > amax {
					amax = t
					ipiv = i
				}
			} else {
				ui[unz] = pinv[i]
				ux[unz] = x[i]
				unz++
			}
		}
		if ipiv == -1 || amax <= 0 {
			return fmt.Errorf("lu: Factorize step %d (column %d): %w", k, col, ErrSingular)
		}
		// Threshold preference for the natural diagonal.
		if pinv[col] < 0 && modulus(x[col]) >= amax*nm.opts.PivotTolerance {
			ipiv = col
		}

		// Commit the pivot and scale the remainder of the column into L.
		pivot := x[ipiv]
		ui[unz] = k
		ux[unz] = pivot
		unz++
		pinv[ipiv] = k
		pvec[k] = ipiv
		li[lnz] = ipiv
		lx[lnz] = 1
		lnz++
		for p := top; p < n; p++ {
			i := xik[p]
			if pinv[i] < 0 {
				li[lnz] = i
				lx[lnz] = x[i] / pivot
				lnz++
			}
			x[i] = 0
		}
	}

	lp[n] = lnz
	up[n] = unz
	// Closing remap: L's indices were recorded before the permutation was
	// fully known.
	for p := 0; p < lnz; p++ {
		li[p] = pinv[li[p]]
	}

	nm.hash = patternHash(a)
	nm.factorized = true

	return nil
}

// Refactor repeats the numeric factorization of a matrix with the same
// sparsity pattern as the one last passed to Factorize, reusing the
// recorded reachable sets (topvec and the arena rows) and pivot sequence
// p. Only the triangular solves and the L/U value assignment are redone.
//
// Unless the context was built with WithoutPatternCheck, the matrix
// pattern is verified against the recorded hash and a mismatch returns
// ErrPatternMismatch; with the check disabled, a mismatch silently
// produces wrong factors; the caller owns the pattern-stability
// guarantee.
func (nm *Numeric[T]) Refactor(a *spmat.Matrix[T]) error {
	if a == nil {
		return ErrNilMatrix
	}
	if !nm.factorized {
		return fmt.Errorf("lu: Refactor: %w", ErrNotFactorized)
	}
	n := nm.n
	if a.NCols != n || a.NRows != n {
		return fmt.Errorf("lu: Refactor on %dx%d, context dimension %d: %w", a.NRows, a.NCols, n, ErrDimensionMismatch)
	}
	if nm.opts.PatternCheck && patternHash(a) != nm.hash {
		return fmt.Errorf("lu: Refactor: %w", ErrPatternMismatch)
	}

	lp, li, lx := nm.l.ColPtr, nm.l.RowInd, nm.l.Values
	up, ui, ux := nm.u.ColPtr, nm.u.RowInd, nm.u.Values
	x, pinv, pvec := nm.w, nm.pinv, nm.p
	lnz, unz := 0, 0

	for i := 0; i < n; i++ {
		x[i] = 0
	}
	for k := 0; k <= n; k++ {
		lp[k] = 0
	}

	for k := 0; k < n; k++ {
		lp[k] = lnz
		up[k] = unz
		col := k
		if nm.q != nil {
			col = nm.q[k]
		}

		// The symbolic state is inherited: no reach, no pivot search.
		top := nm.topvec[k]
		nm.spsolve(a, col, k, top)
		xik := nm.reachRow(k)

		ipiv := pvec[k]
		pivot := x[ipiv]
		li[lnz] = ipiv
		lx[lnz] = 1
		lnz++
		for p := top; p < n; p++ {
			i := xik[p]
			if pinv[i] < k {
				ui[unz] = pinv[i]
				ux[unz] = x[i]
				unz++
			}
			if pinv[i] > k {
				li[lnz] = i
				lx[lnz] = x[i] / pivot
				lnz++
			}
			x[i] = 0
		}
		ui[unz] = k
		ux[unz] = pivot
		unz++
	}

	lp[n] = lnz
	up[n] = unz
	for p := 0; p < lnz; p++ {
		li[p] = pinv[li[p]]
	}

	return nil
}
