// SPDX-License-Identifier: MIT

package lu

import "github.com/katalvlaran/sparsix/spmat"

// The symbolic step of left-looking LU: before any arithmetic on column k,
// find which already-computed columns of L contribute to it. Those are the
// columns reachable in L's dependency graph from the nonzero rows of A's
// column, and a depth-first postorder of that search yields them in an
// order where every dependency precedes its dependents, which is exactly
// what the restricted triangular solve needs.
//
// Visited marking flips L's column pointers in place (flip is
// self-inverse), so repeated reach calls share the graph with no separate
// visited storage and no clearing pass.

func flip(x int) int { return -x - 2 }

func unflip(x int) int {
	if x < 0 {
		return flip(x)
	}

	return x
}

func isMarked(ap []int, j int) bool { return ap[j] < 0 }

// reach computes the set of columns of the partially built L reachable
// from the nonzero rows of a's column col, storing it topologically
// ordered in the arena row for column k. It returns top, the offset where
// the set begins: row[top:n] is the reachable set, dependencies first.
// L's pointer marks are restored before returning.
func (nm *Numeric[T]) reach(a *spmat.Matrix[T], col, k int) int {
	xik := nm.reachRow(k)
	gp := nm.l.ColPtr
	top := nm.n

	for p := a.ColPtr[col]; p < a.ColPtr[col+1]; p++ {
		if !isMarked(gp, a.RowInd[p]) {
			nm.dfs(a.RowInd[p], &top, xik)
		}
	}
	// flip is self-inverse: flipping every reached node a second time
	// restores the original pointers.
	for p := top; p < nm.n; p++ {
		gp[xik[p]] = flip(gp[xik[p]])
	}

	return top
}

// dfs explores L's dependency graph from original row j, pushing each
// fully explored column onto the stack growing down from the end of xik.
// Rows not yet pivoted (pinv[j] < 0) have no L column to descend into and
// are recorded as leaves.
func (nm *Numeric[T]) dfs(j int, top *int, xik []int) {
	gp, gi := nm.l.ColPtr, nm.l.RowInd

	gp[j] = flip(gp[j]) // mark visited
	if jnew := nm.pinv[j]; jnew >= 0 {
		// Bounds of L's column jnew, fetched before descending: deeper
		// recursion may flip these pointer slots.
		p1 := unflip(gp[jnew])
		p2 := unflip(gp[jnew+1])
		for p := p1; p < p2; p++ {
			if !isMarked(gp, gi[p]) {
				nm.dfs(gi[p], top, xik)
			}
		}
	}
	*top = *top - 1
	xik[*top] = j
}
