// SPDX-License-Identifier: MIT

package spmat

import "fmt"

// Matrix is a compressed sparse-column matrix over T. Column j is stored as
// the index-aligned runs RowInd[ColPtr[j]:ColPtr[j+1]] and
// Values[ColPtr[j]:ColPtr[j+1]]. The container is pure data; every
// algorithm in sparsix reads and writes these slices directly.
type Matrix[T Scalar] struct {
	NCols int // number of columns
	NRows int // number of rows
	MaxNZ int // allocated nonzero capacity

	ColPtr []int // length NCols+1, monotonically non-decreasing
	RowInd []int // length MaxNZ
	Values []T   // length MaxNZ, index-aligned with RowInd

	// appended is the next column SetColumn will accept. Callers that fill
	// ColPtr/RowInd/Values directly never touch it.
	appended int
}

// New allocates a zero-initialized ncols×nrows CSC matrix with capacity for
// maxnz nonzeros. The arrays are exact-capacity: the shape is fixed for the
// container's lifetime, only the stored values (and, via SetColumn, the
// pattern) change between factorizations.
func New[T Scalar](ncols, nrows, maxnz int) (*Matrix[T], error) {
	if ncols <= 0 || nrows <= 0 {
		return nil, fmt.Errorf("spmat: New(%d, %d, %d): %w", ncols, nrows, maxnz, ErrBadShape)
	}
	if maxnz < 0 {
		return nil, fmt.Errorf("spmat: New(%d, %d, %d): %w", ncols, nrows, maxnz, ErrBadCapacity)
	}

	return &Matrix[T]{
		NCols:  ncols,
		NRows:  nrows,
		MaxNZ:  maxnz,
		ColPtr: make([]int, ncols+1),
		RowInd: make([]int, maxnz),
		Values: make([]T, maxnz),
	}, nil
}

// NNZ reports the number of stored nonzeros.
func (m *Matrix[T]) NNZ() int { return m.ColPtr[m.NCols] }

// SetColumn writes column j as the given row/value pairs. Columns must be
// appended strictly left to right (j == the first column not yet written);
// the method maintains ColPtr so a matrix is populated by n calls, one per
// column, empty columns included. Rows need not be sorted.
func (m *Matrix[T]) SetColumn(j int, rows []int, vals []T) error {
	if m == nil {
		return ErrNilMatrix
	}
	if j < 0 || j >= m.NCols {
		return fmt.Errorf("spmat: SetColumn(%d): %w", j, ErrOutOfRange)
	}
	if len(rows) != len(vals) {
		return fmt.Errorf("spmat: SetColumn(%d): %d rows vs %d values: %w", j, len(rows), len(vals), ErrBadShape)
	}
	if j != m.appended {
		return fmt.Errorf("spmat: SetColumn(%d): next expected column is %d: %w", j, m.appended, ErrColumnOrder)
	}
	start := m.ColPtr[j]
	if start+len(rows) > m.MaxNZ {
		return fmt.Errorf("spmat: SetColumn(%d): need %d of %d: %w", j, start+len(rows), m.MaxNZ, ErrCapacityExceeded)
	}
	for k, r := range rows {
		if r < 0 || r >= m.NRows {
			return fmt.Errorf("spmat: SetColumn(%d): row %d: %w", j, r, ErrOutOfRange)
		}
		m.RowInd[start+k] = r
		m.Values[start+k] = vals[k]
	}
	m.ColPtr[j+1] = start + len(rows)
	m.appended = j + 1

	return nil
}

// At reads entry (i, j) by scanning column j; absent entries are zero.
// Intended for tests and small matrices, not inner loops.
func (m *Matrix[T]) At(i, j int) (T, error) {
	var zero T
	if m == nil {
		return zero, ErrNilMatrix
	}
	if i < 0 || i >= m.NRows || j < 0 || j >= m.NCols {
		return zero, fmt.Errorf("spmat: At(%d, %d): %w", i, j, ErrOutOfRange)
	}
	for p := m.ColPtr[j]; p < m.ColPtr[j+1]; p++ {
		if m.RowInd[p] == i {
			return m.Values[p], nil
		}
	}

	return zero, nil
}

// Clone returns a deep copy sharing no storage with m.
func (m *Matrix[T]) Clone() *Matrix[T] {
	if m == nil {
		return nil
	}
	c := &Matrix[T]{
		NCols:  m.NCols,
		NRows:  m.NRows,
		MaxNZ:  m.MaxNZ,
		ColPtr: make([]int, len(m.ColPtr)),
		RowInd: make([]int, len(m.RowInd)),
		Values: make([]T, len(m.Values)),
	}
	copy(c.ColPtr, m.ColPtr)
	copy(c.RowInd, m.RowInd)
	copy(c.Values, m.Values)
	c.appended = m.appended

	return c
}
