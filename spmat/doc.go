// SPDX-License-Identifier: MIT

// Package spmat provides the compressed sparse-column (CSC) matrix
// container shared by every other package in sparsix, and the structural
// A+Aᵀ pattern union consumed by the amd orderer.
//
// What:
//
//   - Matrix[T]: a CSC container generic over float64 and complex128.
//     Column j occupies RowInd/Values[ColPtr[j]:ColPtr[j+1]]. The container
//     is pure data: allocate it once for a fixed shape and capacity,
//     repopulate the values each Newton step, and hand it to lu.
//   - Pattern: a structure-only (no values) CSC view, the working currency
//     of symbolic analysis.
//   - AddTranspose: builds the pattern of A+Aᵀ (structural union, no
//     duplicate rows per column), sized with the slack the amd quotient
//     graph needs for in-place growth.
//
// Why:
//
//   - Left-looking LU, AMD ordering and column grouping all speak CSC;
//     one shared value type keeps the borders between them trivial.
//   - AMD requires a symmetric input graph; AddTranspose is the canonical
//     way to manufacture one from a general Jacobian.
//
// Invariants:
//
//   - ColPtr is monotonically non-decreasing and ColPtr[NCols] ≤ MaxNZ.
//   - Row indices within a column carry no required order before
//     factorization; AddTranspose output IS sorted per column.
//   - Ownership is exclusive: nothing in sparsix shares or retains a
//     caller's Matrix beyond the call that receives it, except the lu
//     context's own L and U factors.
//
// Complexity: AddTranspose is O(n + nnz); everything else is O(1) or a
// trivial scan.
//
// Errors: ErrBadShape, ErrBadCapacity, ErrOutOfRange, ErrColumnOrder,
// ErrCapacityExceeded, ErrNilMatrix: all package-prefixed sentinels
// matched with errors.Is.
package spmat
