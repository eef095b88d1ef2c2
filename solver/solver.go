// SPDX-License-Identifier: MIT

package solver

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sparsix/lu"
	"github.com/katalvlaran/sparsix/spmat"
)

var (
	// ErrNotInitialized is returned by Factorize/Solve before Init, or
	// after Close.
	ErrNotInitialized = errors.New("solver: backend not initialized")

	// ErrNilMatrix indicates a nil matrix argument.
	ErrNilMatrix = errors.New("solver: nil matrix")

	// ErrDimensionMismatch indicates a matrix or vector whose shape does
	// not match the one given to Init.
	ErrDimensionMismatch = errors.New("solver: dimension mismatch")
)

// Interface is the backend contract a stiff ODE evolver drives. Exactly
// one Init precedes any number of Factorize/Solve cycles; Close releases
// the workspace. Implementations are single-goroutine, like everything in
// sparsix.
type Interface interface {
	// Init sizes the backend's workspace to a. Values are ignored; only
	// the shape matters.
	Init(a *spmat.Matrix[float64]) error

	// Factorize prepares the backend to solve with coefficient matrix a.
	Factorize(a *spmat.Matrix[float64]) error

	// Solve computes x with a·x = b for the last factorized a.
	// b and x must not alias.
	Solve(b, x []float64) error

	// Close releases the backend's workspace. The backend must be
	// re-initialized before further use.
	Close() error
}

// Sparse drives the sparsix lu core behind the backend contract.
//
// Factorize implements the factor-once / refactor-many protocol on the
// caller's behalf: the first call (and any call after the sparsity
// pattern changes) runs the full factorization; calls with an unchanged
// pattern run lu's cheap Refactor.
type Sparse struct {
	opts []lu.Option
	num  *lu.Numeric[float64]
	n    int
}

var _ Interface = (*Sparse)(nil)

// NewSparse returns an uninitialized sparse backend. The options are
// forwarded to lu.NewNumeric at Init (and again whenever a pattern change
// forces a fresh context).
func NewSparse(opts ...lu.Option) *Sparse {
	return &Sparse{opts: opts}
}

// Init allocates the factorization context for a's dimension.
func (s *Sparse) Init(a *spmat.Matrix[float64]) error {
	if a == nil {
		return ErrNilMatrix
	}
	if a.NCols != a.NRows {
		return fmt.Errorf("solver: Init on %dx%d: %w", a.NRows, a.NCols, ErrDimensionMismatch)
	}
	num, err := lu.NewNumeric[float64](a.NCols, s.opts...)
	if err != nil {
		return fmt.Errorf("solver: Init: %w", err)
	}
	s.num = num
	s.n = a.NCols

	return nil
}

// Factorize refactorizes when the pattern allows, factorizes otherwise.
func (s *Sparse) Factorize(a *spmat.Matrix[float64]) error {
	if s.num == nil {
		return ErrNotInitialized
	}
	if s.num.Factorized() {
		err := s.num.Refactor(a)
		if err == nil {
			return nil
		}
		if !errors.Is(err, lu.ErrPatternMismatch) {
			return fmt.Errorf("solver: Factorize: %w", err)
		}
		// Pattern moved: any AMD ordering is stale, start from a fresh
		// context so it is recomputed.
		num, nerr := lu.NewNumeric[float64](s.n, s.opts...)
		if nerr != nil {
			return fmt.Errorf("solver: Factorize: %w", nerr)
		}
		s.num = num
	}
	if err := s.num.Factorize(a); err != nil {
		return fmt.Errorf("solver: Factorize: %w", err)
	}

	return nil
}

// Solve applies the current factors to b.
func (s *Sparse) Solve(b, x []float64) error {
	if s.num == nil {
		return ErrNotInitialized
	}
	if err := s.num.Solve(b, x); err != nil {
		return fmt.Errorf("solver: Solve: %w", err)
	}

	return nil
}

// Close drops the factorization context.
func (s *Sparse) Close() error {
	s.num = nil
	s.n = 0

	return nil
}
