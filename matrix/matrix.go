// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the dense row-major float32 matrix used by stepnet.
//
// Example:
//
//	a := matrix.Filled(2, 3, 1)
//	b, err := matrix.FromSlice(2, 3, []float32{1, 2, 3, 4, 5, 6})
//	a.AddAssign(b)
package matrix

import (
	"github.com/born-ml/stepnet/internal/matrix"
)

// Matrix is a dense rows x columns matrix.
type Matrix = matrix.Matrix

// Extent is a (rows, columns) pair.
type Extent = matrix.Extent

// Type classifies a matrix by shape.
type Type = matrix.Type

// Shape classes.
const (
	TypeEmpty        Type = matrix.TypeEmpty
	TypeScalar       Type = matrix.TypeScalar
	TypeRowVector    Type = matrix.TypeRowVector
	TypeColumnVector Type = matrix.TypeColumnVector
	TypeMatrix       Type = matrix.TypeMatrix
)

// ShapeError reports operands with incompatible extents.
type ShapeError = matrix.ShapeError

// Errors wrapped by ShapeError.
var (
	ErrSizeMismatch      = matrix.ErrSizeMismatch
	ErrDimensionMismatch = matrix.ErrDimensionMismatch
	ErrBadShape          = matrix.ErrBadShape
	ErrNilMatrix         = matrix.ErrNilMatrix
)

// New returns a zero-filled matrix.
func New(rows, columns int) *Matrix { return matrix.New(rows, columns) }

// Empty returns a 0x0 matrix.
func Empty() *Matrix { return matrix.Empty() }

// FromSlice wraps data (row-major) as a rows x columns matrix.
func FromSlice(rows, columns int, data []float32) (*Matrix, error) {
	return matrix.FromSlice(rows, columns, data)
}

// Filled returns a matrix with every element set to v.
func Filled(rows, columns int, v float32) *Matrix { return matrix.Filled(rows, columns, v) }
