// SPDX-License-Identifier: MIT

// Package grouping partitions the columns of a sparse matrix into
// conflict-free groups: two columns share a group only if their nonzero
// row sets are disjoint.
//
// Why: when a Jacobian is evaluated by finite differences, all columns of
// one group can be perturbed simultaneously, since their responses never
// land on the same row, and the number of function evaluations drops from n to
// the number of groups (the matrix bandwidth plus one, for banded
// patterns).
//
// The assignment is first-fit greedy: group numbers are issued in
// ascending order, and for each group the ungrouped columns are scanned in
// index order, admitting every column that does not collide with the rows
// the group has claimed so far. This is a graph-coloring-style heuristic,
// not an optimal coloring; ties break purely by ascending column index.
//
// Complexity: O(g·nnz) time for g groups, O(n) memory.
package grouping
