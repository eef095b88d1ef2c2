// SPDX-License-Identifier: MIT

package grouping

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sparsix/spmat"
)

var (
	// ErrNilMatrix indicates a nil *spmat.Matrix argument.
	ErrNilMatrix = errors.New("grouping: nil matrix")

	// ErrBadShape indicates inconsistent ptr/groups lengths.
	ErrBadShape = errors.New("grouping: inconsistent argument lengths")
)

// Columns assigns every column of the (ptr, ind) CSC pattern with n
// columns and nrows rows to a conflict-free group, writing the group
// number of column j into groups[j]. It returns the number of groups.
//
// groups must have length n. Row indices in ind must be < nrows.
func Columns(ptr, ind []int, n, nrows int, groups []int) (int, error) {
	if len(ptr) != n+1 || len(groups) != n {
		return 0, fmt.Errorf("grouping: len(ptr)=%d, len(groups)=%d for n=%d: %w", len(ptr), len(groups), n, ErrBadShape)
	}
	for j := 0; j < n; j++ {
		groups[j] = -1
	}
	if n == 0 {
		return 0, nil
	}

	// filled marks the rows claimed by the group under construction.
	filled := make([]bool, nrows)

	ngroups := 0
	for ; ngroups < n; ngroups++ {
		for i := range filled {
			filled[i] = false
		}

		// Admit every remaining column that fits the current group.
		done := true
		for col := 0; col < n; col++ {
			if groups[col] != -1 {
				continue
			}
			done = false
			fits := true
			for p := ptr[col]; p < ptr[col+1]; p++ {
				if filled[ind[p]] {
					fits = false
					break
				}
			}
			if fits {
				groups[col] = ngroups
				for p := ptr[col]; p < ptr[col+1]; p++ {
					filled[ind[p]] = true
				}
			}
		}
		if done {
			// Every column was already grouped before this pass; the
			// current group number was never used.
			break
		}
	}

	return ngroups, nil
}

// Of is the Matrix convenience wrapper around Columns: it allocates the
// group slice and returns (groups, count).
func Of[T spmat.Scalar](m *spmat.Matrix[T]) ([]int, int, error) {
	if m == nil {
		return nil, 0, ErrNilMatrix
	}
	groups := make([]int, m.NCols)
	ngroups, err := Columns(m.ColPtr, m.RowInd, m.NCols, m.NRows, groups)
	if err != nil {
		return nil, 0, err
	}

	return groups, ngroups, nil
}
