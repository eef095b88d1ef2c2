// SPDX-License-Identifier: MIT

// Package amd computes an approximate-minimum-degree (AMD) fill-reducing
// column ordering on a quotient graph.
//
// What:
//
//	Order(c) takes the symmetric pattern produced by spmat.AddTranspose
//	(diagonal entries are ignored) and returns a permutation of 0..n-1 that tends to
//	keep LU (and Cholesky) fill-in low: at every step the minimum-degree
//	node is mass-eliminated together with its supervariable, adjacent
//	elements are absorbed into one new element, and affected degrees are
//	updated with an approximate (upper-bound) external degree rather than
//	an exact count.
//
// Why:
//
//	Pivoting on a fill-reducing order can shrink the L and U factors by
//	orders of magnitude on Jacobian-like patterns, which is what makes the
//	factor-once / refactor-many Newton loop in the lu package affordable.
//
// Mechanics worth knowing before reading the code:
//
//   - Quotient graph: eliminated nodes become "elements" that summarize
//     the connectivity of the variables they swallowed. Variables and
//     elements share the Ptr/Ind arrays of the input pattern; a node's
//     adjacency starts with elen[i] element references, followed by
//     len[i]-elen[i] plain variables.
//   - Flip encoding: Ptr[i] is reused as a parent/absorption reference by
//     storing flip(x) = -x-2, a self-inverse transform. flip keeps 0
//     distinguishable (flip(0) = -2) and -1 a fixed point.
//   - Degree buckets: head/next/last form doubly linked lists per degree,
//     giving O(1) minimum selection with a rolling mindeg cursor.
//   - Supernode detection: variables with identical adjacency sets are
//     hashed into buckets and merged, so they are eliminated together.
//   - Garbage collection: elements grow in place; when the free space at
//     the tail of Ind runs out, live adjacency lists are compacted to the
//     front. This is why the input needs nnz + nnz/5 + 2n capacity.
//   - Dense nodes (degree > min(n-2, max(16, 10·√n))) are deferred into
//     one placeholder element and eliminated last as a block.
//
// The permutation is the postorder of the resulting elimination tree.
//
// Order consumes its input: the pattern's arrays are used as the mutable
// quotient graph and hold no meaningful data afterwards.
//
// Complexity: near O(nnz·α) in practice; worst case O(n·nnz).
//
// Errors: ErrNilPattern, ErrInsufficientSlack.
package amd
