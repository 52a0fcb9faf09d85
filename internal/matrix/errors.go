package matrix

import (
	"errors"
	"fmt"
)

// Sentinel errors. Match them with errors.Is; kernels wrap them in a
// *ShapeError that carries the operand extents.
var (
	// ErrSizeMismatch is returned by elementwise operations whose operands
	// differ in rows or in columns.
	ErrSizeMismatch = errors.New("matrix: operand sizes differ")

	// ErrDimensionMismatch is returned by multiplication when the left
	// operand's columns differ from the right operand's rows.
	ErrDimensionMismatch = errors.New("matrix: inner dimensions differ")

	// ErrBadShape is returned when a buffer does not match the requested extents.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrNilMatrix is returned when a nil operand reaches a kernel.
	ErrNilMatrix = errors.New("matrix: nil operand")
)

// Extent is a (rows, columns) pair used in error reports.
type Extent struct {
	Rows    int
	Columns int
}

// String formats the extent as RxC.
func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Rows, e.Columns)
}

// ShapeError describes an operation rejected because of its operand extents.
type ShapeError struct {
	Op    string
	Left  Extent
	Right Extent
	Err   error
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s: %s vs %s: %v", e.Op, e.Left, e.Right, e.Err)
}

// Unwrap returns the underlying sentinel.
func (e *ShapeError) Unwrap() error {
	return e.Err
}

// NewShapeError builds a ShapeError for op from the two operands.
func NewShapeError(op string, l, r *Matrix, err error) *ShapeError {
	return &ShapeError{
		Op:    op,
		Left:  l.Extent(),
		Right: r.Extent(),
		Err:   err,
	}
}
