// SPDX-License-Identifier: MIT

package lu

import "fmt"

// Solve computes x with A·x = b for the most recently (re)factorized A:
// permute b by pinv, forward-substitute through unit-lower L,
// back-substitute through U (each U column ends with its diagonal entry),
// then undo the column ordering if one is in effect.
//
// b and x must have length n and must not alias. b is left untouched.
// Degenerate divisions (a zero pivot that slipped past the factorization
// checks) propagate as NaN/Inf in x; they are not separately detected.
func (nm *Numeric[T]) Solve(b, x []T) error {
	if !nm.factorized {
		return fmt.Errorf("lu: Solve: %w", ErrNotFactorized)
	}
	n := nm.n
	if len(b) != n || len(x) != n {
		return fmt.Errorf("lu: Solve with len(b)=%d, len(x)=%d, want %d: %w", len(b), len(x), n, ErrDimensionMismatch)
	}

	// Row permutation: entry j of b belongs at pivot step pinv[j].
	for j := 0; j < n; j++ {
		x[nm.pinv[j]] = b[j]
	}

	// Forward substitution, L x = ·. L's diagonal entry leads each column.
	ap, ai, ax := nm.l.ColPtr, nm.l.RowInd, nm.l.Values
	for j := 0; j < n; j++ {
		x[j] /= ax[ap[j]]
		for p := ap[j] + 1; p < ap[j+1]; p++ {
			x[ai[p]] -= ax[p] * x[j]
		}
	}

	// Backward substitution, U x = ·. U's diagonal entry closes each column.
	ap, ai, ax = nm.u.ColPtr, nm.u.RowInd, nm.u.Values
	for j := n - 1; j >= 0; j-- {
		x[j] /= ax[ap[j+1]-1]
		for p := ap[j]; p < ap[j+1]-1; p++ {
			x[ai[p]] -= ax[p] * x[j]
		}
	}

	// Inverse column permutation, through the scratch vector.
	if nm.q != nil {
		w := nm.w
		copy(w, x)
		for j := 0; j < n; j++ {
			x[nm.q[j]] = w[j]
		}
	}

	return nil
}
