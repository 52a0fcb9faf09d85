// Package matrix implements the dense row-major float32 matrix used by every
// kernel and step in stepnet.
//
// A Matrix owns a contiguous buffer of rows*columns elements. It has value
// semantics: Clone duplicates the buffer, Move transfers it and leaves the
// source empty. Nothing shares a buffer between two live matrices except the
// zero-copy views returned by Data and Row, which are only valid while the
// owner is not moved.
package matrix

import (
	"fmt"
	"iter"
	"math"
)

// Type classifies a matrix by its extents. Used for diagnostics only.
type Type uint8

// Matrix classifications.
const (
	TypeEmpty Type = iota
	TypeScalar
	TypeRowVector
	TypeColumnVector
	TypeMatrix
)

// String returns a human-readable classification.
func (t Type) String() string {
	switch t {
	case TypeEmpty:
		return "EMPTY"
	case TypeScalar:
		return "SCALAR"
	case TypeRowVector:
		return "ROW_VECTOR"
	case TypeColumnVector:
		return "COLUMN_VECTOR"
	case TypeMatrix:
		return "MATRIX"
	default:
		return "UNKNOWN"
	}
}

// Matrix is a dense row-major matrix of float32.
//
// Invariant: len(data) == rows*columns. The zero value is the empty 0x0 matrix.
type Matrix struct {
	rows    int
	columns int
	data    []float32
}

// New allocates a zero-filled rows x columns matrix.
// Panics if either extent is negative.
func New(rows, columns int) *Matrix {
	if rows < 0 || columns < 0 {
		panic(fmt.Sprintf("matrix.New: negative extent %dx%d", rows, columns))
	}
	return &Matrix{
		rows:    rows,
		columns: columns,
		data:    make([]float32, rows*columns),
	}
}

// Empty returns a new 0x0 matrix.
func Empty() *Matrix {
	return &Matrix{}
}

// FromSlice creates a rows x columns matrix holding a copy of data.
func FromSlice(rows, columns int, data []float32) (*Matrix, error) {
	if rows < 0 || columns < 0 || len(data) != rows*columns {
		return nil, fmt.Errorf("%w: %dx%d needs %d elements, got %d",
			ErrBadShape, rows, columns, max(rows*columns, 0), len(data))
	}
	m := New(rows, columns)
	copy(m.data, data)
	return m, nil
}

// Filled creates a rows x columns matrix with every element set to v.
func Filled(rows, columns int, v float32) *Matrix {
	m := New(rows, columns)
	for i := range m.data {
		m.data[i] = v
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.columns }

// Len returns the number of elements.
func (m *Matrix) Len() int { return len(m.data) }

// Extent returns the (rows, columns) pair.
func (m *Matrix) Extent() Extent {
	if m == nil {
		return Extent{}
	}
	return Extent{Rows: m.rows, Columns: m.columns}
}

// SameExtent reports whether m and other have identical rows and columns.
func (m *Matrix) SameExtent(other *Matrix) bool {
	return m.rows == other.rows && m.columns == other.columns
}

// Type classifies the matrix by its extents.
func (m *Matrix) Type() Type {
	switch {
	case len(m.data) == 0:
		return TypeEmpty
	case m.rows == 1 && m.columns == 1:
		return TypeScalar
	case m.rows == 1:
		return TypeRowVector
	case m.columns == 1:
		return TypeColumnVector
	default:
		return TypeMatrix
	}
}

// Get returns the element at row r, column c.
// Bounds are the caller's responsibility.
func (m *Matrix) Get(r, c int) float32 {
	return m.data[r*m.columns+c]
}

// Put stores val at row r, column c.
// Bounds are the caller's responsibility.
func (m *Matrix) Put(r, c int, val float32) {
	m.data[r*m.columns+c] = val
}

// Data returns the backing slice in row-major order (zero-copy).
//
// WARNING: modifications to the returned slice modify the matrix.
func (m *Matrix) Data() []float32 {
	return m.data
}

// Row returns a zero-copy view of row i.
func (m *Matrix) Row(i int) []float32 {
	return m.data[i*m.columns : (i+1)*m.columns]
}

// Scan yields every element in row-major order as (linear index, pointer),
// so callers may update elements in place. Each call starts a fresh traversal.
func (m *Matrix) Scan() iter.Seq2[int, *float32] {
	return func(yield func(int, *float32) bool) {
		for i := range m.data {
			if !yield(i, &m.data[i]) {
				return
			}
		}
	}
}

// ConstScan yields every element value in row-major order.
func (m *Matrix) ConstScan() iter.Seq[float32] {
	return func(yield func(float32) bool) {
		for _, v := range m.data {
			if !yield(v) {
				return
			}
		}
	}
}

// Clone returns a deep copy.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{
		rows:    m.rows,
		columns: m.columns,
		data:    make([]float32, len(m.data)),
	}
	copy(out.data, m.data)
	return out
}

// CopyFrom replaces the receiver's contents with a deep copy of src.
func (m *Matrix) CopyFrom(src *Matrix) {
	if m == src {
		return
	}
	m.rows = src.rows
	m.columns = src.columns
	m.data = append(m.data[:0:0], src.data...)
}

// Move transfers the buffer into a new Matrix and resets the receiver to
// the empty 0x0 state.
func (m *Matrix) Move() *Matrix {
	out := &Matrix{
		rows:    m.rows,
		columns: m.columns,
		data:    m.data,
	}
	m.rows, m.columns, m.data = 0, 0, nil
	return out
}

// AddAssign accumulates other into m elementwise (m += other).
// Panics if the extents differ.
func (m *Matrix) AddAssign(other *Matrix) *Matrix {
	if !m.SameExtent(other) {
		panic(fmt.Sprintf("matrix.AddAssign: extent mismatch %s vs %s", m.Extent(), other.Extent()))
	}
	for i, v := range other.data {
		m.data[i] += v
	}
	return m
}

// Scale returns a new matrix with every element multiplied by s.
// The receiver is not modified.
func (m *Matrix) Scale(s float64) *Matrix {
	out := m.Clone()
	for i, v := range out.data {
		out.data[i] = float32(s * float64(v))
	}
	return out
}

// Transpose returns a new columns x rows matrix.
func (m *Matrix) Transpose() *Matrix {
	out := New(m.columns, m.rows)
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.columns; j++ {
			out.data[j*m.rows+i] = m.data[i*m.columns+j]
		}
	}
	return out
}

// Equal reports whether both matrices have the same extents and all
// elements compare equal.
func (m *Matrix) Equal(other *Matrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	if !m.SameExtent(other) {
		return false
	}
	for i, v := range m.data {
		if v != other.data[i] {
			return false
		}
	}
	return true
}

// NotEqual is the negation of Equal.
func (m *Matrix) NotEqual(other *Matrix) bool {
	return !m.Equal(other)
}

// ApproxEqual reports whether both matrices have the same extents and every
// pair of elements differs by at most tol.
func (m *Matrix) ApproxEqual(other *Matrix, tol float64) bool {
	if m == nil || other == nil {
		return m == other
	}
	if !m.SameExtent(other) {
		return false
	}
	for i, v := range m.data {
		if math.Abs(float64(v)-float64(other.data[i])) > tol {
			return false
		}
	}
	return true
}

// String returns a short description such as "Matrix[2x3 MATRIX]".
func (m *Matrix) String() string {
	return fmt.Sprintf("Matrix[%s %s]", m.Extent(), m.Type())
}
