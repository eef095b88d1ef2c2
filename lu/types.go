// SPDX-License-Identifier: MIT
// Package lu: sentinel errors and functional options for the
// factorization context.

package lu

import (
	"errors"
	"fmt"
)

var (
	// ErrBadDimension is returned by NewNumeric for a non-positive n.
	ErrBadDimension = errors.New("lu: dimension must be positive")

	// ErrBadOrdering is returned when an explicit column ordering is not a
	// bijection on 0..n-1.
	ErrBadOrdering = errors.New("lu: column ordering is not a permutation")

	// ErrNilMatrix indicates a nil *spmat.Matrix argument.
	ErrNilMatrix = errors.New("lu: nil matrix")

	// ErrDimensionMismatch indicates a matrix or vector whose shape does
	// not match the context's dimension n.
	ErrDimensionMismatch = errors.New("lu: dimension mismatch")

	// ErrSingular is returned when factorization finds no viable pivot for
	// some column: every candidate is structurally absent or has
	// non-positive magnitude. The L/U contents are unusable afterwards.
	ErrSingular = errors.New("lu: matrix is numerically singular")

	// ErrNotFactorized is returned by Refactor and Solve before the first
	// successful Factorize, or after a failed one.
	ErrNotFactorized = errors.New("lu: no valid factorization")

	// ErrPatternMismatch is returned by Refactor when the matrix's sparsity
	// pattern differs from the one recorded by Factorize. Disable the check
	// with WithoutPatternCheck to restore the original unchecked contract.
	ErrPatternMismatch = errors.New("lu: sparsity pattern differs from factorized matrix")
)

// DefaultPivotTolerance is the threshold used by threshold partial
// pivoting: the natural diagonal candidate is kept whenever its magnitude
// is at least DefaultPivotTolerance times the maximum candidate magnitude.
const DefaultPivotTolerance = 0.1

// Option configures a Numeric at construction. Use with NewNumeric.
type Option func(*Options)

// Options holds the configurable parameters of a factorization context.
// Fields are set through WithX constructors; invalid parameter values are
// programmer errors and panic there, not at factorization time.
type Options struct {
	// PivotTolerance relaxes partial pivoting: the natural diagonal is
	// preferred over the unconditional maximum when its magnitude reaches
	// PivotTolerance·max. 1 is strict partial pivoting, small values trade
	// stability for sparsity. Default DefaultPivotTolerance.
	PivotTolerance float64

	// ColPerm, if non-nil, is an explicit fill-reducing column ordering
	// (pivot step → column). Takes precedence over UseAMD.
	ColPerm []int

	// UseAMD computes a fill-reducing ordering via amd.Order on the
	// pattern of A+Aᵀ at the first Factorize call.
	UseAMD bool

	// PatternCheck controls whether Refactor verifies the matrix pattern
	// against the hash recorded by Factorize. Default true.
	PatternCheck bool
}

// DefaultOptions returns the documented defaults: threshold pivoting at
// DefaultPivotTolerance, natural column order, pattern checking on.
func DefaultOptions() Options {
	return Options{
		PivotTolerance: DefaultPivotTolerance,
		ColPerm:        nil,
		UseAMD:         false,
		PatternCheck:   true,
	}
}

// WithPivotTolerance sets the threshold pivoting tolerance. Panics unless
// 0 < tol <= 1 (programmer error; there is no meaningful recovery).
func WithPivotTolerance(tol float64) Option {
	if tol <= 0 || tol > 1 {
		panic(fmt.Sprintf("lu: WithPivotTolerance(%v): tolerance must be in (0, 1]", tol))
	}

	return func(o *Options) {
		o.PivotTolerance = tol
	}
}

// WithOrdering supplies an explicit column ordering q (pivot step →
// column). The slice is copied at construction; it must be a permutation
// of 0..n-1, validated by NewNumeric.
func WithOrdering(q []int) Option {
	return func(o *Options) {
		o.ColPerm = q
	}
}

// WithAMD enables approximate-minimum-degree column ordering, computed
// from the pattern of A+Aᵀ when Factorize first runs.
func WithAMD() Option {
	return func(o *Options) {
		o.UseAMD = true
	}
}

// WithoutPatternCheck disables Refactor's pattern-hash verification,
// restoring the strict original contract in which a pattern mismatch is an
// unchecked precondition violation with silently wrong results.
func WithoutPatternCheck() Option {
	return func(o *Options) {
		o.PatternCheck = false
	}
}
