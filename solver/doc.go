// SPDX-License-Identifier: MIT

// Package solver defines the four-verb backend contract an ODE evolver
// drives (Init, Factorize, Solve, Close) and provides two
// interchangeable strategies behind it:
//
//   - Sparse: the sparsix core. Init allocates an lu.Numeric sized to the
//     matrix; Factorize transparently downgrades to a cheap Refactor while
//     the sparsity pattern is unchanged, and silently re-runs the full
//     factorization (ordering included) when the pattern moves.
//   - Dense: a gonum mat.LU reference backend. Same contract, dense
//     arithmetic; the oracle of choice in tests and the fallback when a
//     Jacobian is too small or too full for sparsity to pay off.
//
// The evolver's protocol is: Init once per problem, Factorize once per
// Newton step, Solve once per right-hand side, Close when done. All
// failures are ordinary errors wrapping the sentinels of the underlying
// packages (lu.ErrSingular and friends) plus this package's own
// ErrNotInitialized.
package solver
