// SPDX-License-Identifier: MIT
// Package spmat: scalar constraint and sentinel error set.

package spmat

import "errors"

// Scalar is the set of value types a sparse matrix may carry. The real and
// complex factorization variants are one generic implementation; only pivot
// magnitude comparison differs (absolute value vs. modulus), and that lives
// in the lu package.
type Scalar interface {
	float64 | complex128
}

var (
	// ErrBadShape is returned when a requested shape is invalid
	// (ncols <= 0 or nrows <= 0).
	ErrBadShape = errors.New("spmat: invalid shape")

	// ErrBadCapacity is returned when the requested nonzero capacity is
	// negative or cannot hold the shape's mandatory column pointers.
	ErrBadCapacity = errors.New("spmat: invalid nonzero capacity")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("spmat: index out of range")

	// ErrColumnOrder is returned by SetColumn when columns are not appended
	// strictly left to right. CSC storage is append-only by construction.
	ErrColumnOrder = errors.New("spmat: columns must be appended in order")

	// ErrCapacityExceeded is returned when appending a column would overflow
	// the allocated nonzero capacity.
	ErrCapacityExceeded = errors.New("spmat: nonzero capacity exceeded")

	// ErrNilMatrix indicates a nil *Matrix receiver or argument.
	ErrNilMatrix = errors.New("spmat: nil matrix")
)
