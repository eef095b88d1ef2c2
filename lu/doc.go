// SPDX-License-Identifier: MIT

// Package lu implements sparse left-looking LU factorization with threshold
// partial pivoting, cheap numeric refactorization, and the triangular
// solves that apply the factors to right-hand sides.
//
// What:
//
//   - Numeric[T]: the central stateful object. It owns the L and U factors
//     (each sized for worst-case triangular fill, n(n+1)/2), the row
//     permutation pair pinv/p, an optional fill-reducing column ordering q,
//     and the reusable workspaces, most importantly the per-column
//     reachability arena and topvec, the recorded symbolic state.
//   - Factorize(a): full factorization. For every column k it runs a
//     depth-first reachability search over the columns of L built so far
//     (the "symbolic" step), records where the reachable set starts
//     (topvec[k]), performs the restricted sparse triangular solve, and
//     picks a pivot by maximum modulus, preferring the natural diagonal
//     whenever it is within PivotTolerance of the maximum.
//   - Refactor(a): repeats the numeric work only. The recorded reachable
//     sets and pivot sequence are reused verbatim; no DFS, no pivot
//     search. Valid only while the matrix keeps the sparsity pattern of
//     the originally factorized one, which Refactor verifies with a cheap
//     pattern hash unless WithoutPatternCheck was given.
//   - Solve(b, x): permuted forward/backward substitution producing the
//     solution of A·x = b for the most recently (re)factorized A.
//
// Why:
//
//	A stiff ODE integrator re-solves A·x = b at every Newton iteration
//	with a Jacobian whose values drift but whose pattern is frozen for
//	many consecutive steps. Factorize once, Refactor many times: the
//	symbolic work and the pivot search (often the dominant cost on small
//	stiff systems) are paid only when the pattern actually changes.
//
// The factorization is generic over float64 and complex128; the complex
// variant uses complex arithmetic with modulus pivot comparison and is
// otherwise identical.
//
// Concurrency: none. A Numeric is exclusively owned by one goroutine;
// callers wanting concurrent solves use independent contexts.
//
// Errors: ErrBadDimension, ErrBadOrdering, ErrNilMatrix,
// ErrDimensionMismatch, ErrSingular, ErrNotFactorized,
// ErrPatternMismatch. Degenerate divisions (a zero pivot reached by
// bypassing the checks) propagate as NaN/Inf in the solution rather than
// as a distinct error.
package lu
