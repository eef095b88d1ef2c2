// Package sparsix is a single-threaded sparse direct linear-solver engine:
// left-looking LU factorization with cheap refactorization, built for the
// linear systems that arise at every Newton step of a stiff ODE integrator
// with a sparse Jacobian.
//
// 🚀 What is sparsix?
//
//	A deterministic, exact (up to floating point) direct solver core:
//		• spmat:    compressed sparse-column containers (real & complex)
//		            and the structural A+Aᵀ pattern union
//		• amd:      approximate minimum degree fill-reducing ordering
//		            on a quotient graph
//		• lu:       left-looking LU with threshold partial pivoting,
//		            symbolic-state reuse (Refactor) and triangular solves
//		• grouping: conflict-free column grouping for finite-difference
//		            Jacobian compression
//		• solver:   the four-verb backend contract (Init / Factorize /
//		            Solve / Close) with the sparse core and a gonum dense
//		            reference backend behind it
//
// ✨ Why choose sparsix?
//
//   - Refactorization – when only numeric values change between Newton
//     steps, the recorded elimination order, pivot sequence and symbolic
//     reachability sets are reused: no DFS, no pivot search
//   - Deterministic – no randomness, no goroutines, no hidden state;
//     one context per solving thread
//   - Pure algorithms – the kernels depend only on the standard library;
//     gonum appears solely as the dense reference backend
//
// The intended call sequence mirrors a Newton iteration:
//
//	A, _ := spmat.New[float64](n, n, nnz) // populate once per step
//	N, _ := lu.NewNumeric[float64](n, lu.WithAMD())
//	N.Factorize(A)                        // once per pattern
//	N.Solve(b, x)                         // per right-hand side
//	N.Refactor(A2)                        // per subsequent step, same pattern
//
//	go get github.com/katalvlaran/sparsix
package sparsix
