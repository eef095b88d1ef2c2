// SPDX-License-Identifier: MIT

package spmat

import "fmt"

// Pattern is a structure-only CSC view: column j occupies
// Ind[Ptr[j]:Ptr[j+1]], values are implied. Ind is allocated with the slack
// the amd quotient graph needs to grow elements in place
// (nnz + nnz/5 + 2n); live entries end at Ptr[N].
type Pattern struct {
	N   int
	Ptr []int // length N+1
	Ind []int // length = slack bound, live entries in [0, Ptr[N])
}

// NNZ reports the number of live entries in the pattern.
func (c *Pattern) NNZ() int { return c.Ptr[c.N] }

// AddTranspose builds the structural union A ∪ Aᵀ for a square matrix,
// with no duplicate row entries per column: the symmetrized graph the
// amd orderer consumes (amd ignores any diagonal entries itself).
//
// Stages:
//  1. Counting-sort transpose of A's pattern (histogram of row counts,
//     cumulative sum into pointers, scatter). Transposition sorts, so T's
//     columns come out in ascending row order.
//  2. Transpose T back; the result is A's own pattern with columns sorted,
//     regardless of the order the caller stored rows in.
//  3. Per column, a linear sorted-merge of the two index lists, dropping
//     equal heads down to one entry.
//
// The returned Ind carries the amd slack bound as extra capacity.
// Complexity: O(n + nnz) time, O(n + nnz) transient memory.
func AddTranspose[T Scalar](a *Matrix[T]) (*Pattern, error) {
	if a == nil {
		return nil, ErrNilMatrix
	}
	if a.NCols != a.NRows {
		return nil, fmt.Errorf("spmat: AddTranspose on %dx%d: %w", a.NRows, a.NCols, ErrBadShape)
	}
	n := a.NCols

	// Stage 1: T = pattern of Aᵀ, columns sorted by construction.
	tp, ti := transposePattern(a.ColPtr, a.RowInd, n, n)

	// Stage 2: S = pattern of Tᵀ = A with sorted columns.
	sp, si := transposePattern(tp, ti, n, n)

	// Stage 3: merge S and T column by column.
	cp := make([]int, n+1)
	ci := make([]int, 0, 2*a.NNZ())
	for j := 0; j < n; j++ {
		pa, ea := sp[j], sp[j+1]
		pt, et := tp[j], tp[j+1]
		for pa < ea && pt < et {
			switch {
			case si[pa] < ti[pt]:
				ci = append(ci, si[pa])
				pa++
			case ti[pt] < si[pa]:
				ci = append(ci, ti[pt])
				pt++
			default: // identical entry in both, keep one
				ci = append(ci, si[pa])
				pa++
				pt++
			}
		}
		ci = append(ci, si[pa:ea]...)
		ci = append(ci, ti[pt:et]...)
		cp[j+1] = len(ci)
	}

	// Trim to the minimum capacity amd requires: nnz + nnz/5 + 2n.
	nz := len(ci)
	ind := make([]int, nz+nz/5+2*n)
	copy(ind, ci)

	return &Pattern{N: n, Ptr: cp, Ind: ind}, nil
}

// transposePattern computes the CSC pattern of the transpose of the
// (ptr, ind) pattern with ncols columns and nrows rows: histogram the row
// counts, cumulative-sum them into column pointers, then scatter. The
// output columns are sorted in ascending index order.
func transposePattern(ptr, ind []int, ncols, nrows int) (tp, ti []int) {
	nz := ptr[ncols]
	tp = make([]int, nrows+1)
	ti = make([]int, nz)
	next := make([]int, nrows)

	for p := 0; p < nz; p++ {
		next[ind[p]]++
	}
	for i, sum := 0, 0; i < nrows; i++ {
		tp[i] = sum
		sum += next[i]
		next[i] = tp[i]
	}
	tp[nrows] = nz
	for j := 0; j < ncols; j++ {
		for p := ptr[j]; p < ptr[j+1]; p++ {
			ti[next[ind[p]]] = j
			next[ind[p]]++
		}
	}

	return tp, ti
}
