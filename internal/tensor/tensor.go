// Package tensor wraps matrices with the bookkeeping steps pass between each other.
//
// A Tensor owns one *matrix.Matrix plus two flags: trackable (the tensor
// takes part in graph bookkeeping) and leaf (nothing upstream produced it,
// as for weights, biases and user inputs). A tensor may also carry a stats
// request; steps that produce a tensor carrying one compute Stats for it and
// hand them to the requested StatsPrinter.
package tensor

import (
	"fmt"

	"github.com/born-ml/stepnet/internal/matrix"
)

// Tensor is a matrix with graph-tracking metadata.
//
// Example:
//
//	w := tensor.New(2000, 1000, true, true) // trackable leaf weights
//	x := tensor.FromMatrix(matrix.Filled(1, 2000, 1))
type Tensor struct {
	data      *matrix.Matrix
	trackable bool
	leaf      bool
	printer   StatsPrinter // non-nil when statistics were requested
}

// New creates a zero-filled rows x columns tensor.
func New(rows, columns int, trackable, isLeaf bool) *Tensor {
	return &Tensor{
		data:      matrix.New(rows, columns),
		trackable: trackable,
		leaf:      isLeaf,
	}
}

// FromMatrix wraps m as an untracked leaf tensor (a user input).
// The tensor takes ownership of m.
func FromMatrix(m *matrix.Matrix) *Tensor {
	if m == nil {
		panic("tensor.FromMatrix: nil matrix")
	}
	return &Tensor{data: m, leaf: true}
}

// Derive wraps m, the result of an operation over parents, as a non-leaf
// tensor. It is trackable if any parent is, and inherits the first stats
// request found among the parents.
func Derive(m *matrix.Matrix, parents ...*Tensor) *Tensor {
	out := &Tensor{data: m}
	for _, p := range parents {
		if p == nil {
			continue
		}
		out.trackable = out.trackable || p.trackable
		if out.printer == nil {
			out.printer = p.printer
		}
	}
	return out
}

// Matrix returns the underlying matrix (zero-copy).
func (t *Tensor) Matrix() *matrix.Matrix {
	return t.data
}

// Rows returns the number of rows.
func (t *Tensor) Rows() int { return t.data.Rows() }

// Cols returns the number of columns.
func (t *Tensor) Cols() int { return t.data.Cols() }

// Get returns the element at row r, column c.
func (t *Tensor) Get(r, c int) float32 { return t.data.Get(r, c) }

// Put stores val at row r, column c.
func (t *Tensor) Put(r, c int, val float32) { t.data.Put(r, c, val) }

// Trackable reports whether the tensor takes part in graph bookkeeping.
func (t *Tensor) Trackable() bool { return t.trackable }

// IsLeaf reports whether the tensor has no upstream computation.
func (t *Tensor) IsLeaf() bool { return t.leaf }

// WithStats requests statistics for this tensor and everything derived
// from it. Returns the tensor itself for method chaining.
func (t *Tensor) WithStats(p StatsPrinter) *Tensor {
	t.printer = p
	return t
}

// HasStats reports whether statistics were requested.
func (t *Tensor) HasStats() bool {
	return t.printer != nil
}

// ReportStats computes Stats labelled with label and passes them to the
// requested printer. It does nothing if no statistics were requested.
func (t *Tensor) ReportStats(label string) {
	if t.printer == nil {
		return
	}
	t.printer.PrintStats(t.ComputeStats(label))
}

// Clone returns a deep copy with the same flags and stats request.
func (t *Tensor) Clone() *Tensor {
	return &Tensor{
		data:      t.data.Clone(),
		trackable: t.trackable,
		leaf:      t.leaf,
		printer:   t.printer,
	}
}

// String returns a short description of the tensor.
func (t *Tensor) String() string {
	return fmt.Sprintf("Tensor[%s trackable=%t leaf=%t]", t.data.Extent(), t.trackable, t.leaf)
}
