package ops

import (
	"github.com/born-ml/stepnet/internal/matrix"
)

// AdditionStd computes l + r elementwise over a linear scan.
// The operands must have identical extents.
type AdditionStd struct{}

// Name returns "add".
func (AdditionStd) Name() string { return "add" }

// Apply returns a new matrix with out[i] = l[i] + r[i].
func (AdditionStd) Apply(l, r *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkSameExtent("add", l, r); err != nil {
		return nil, err
	}

	out := matrix.New(l.Rows(), l.Cols())
	addFloat32(out.Data(), l.Data(), r.Data())
	return out, nil
}

// BroadcastAdd adds a (1, c) row vector l to every row of an (n, c) matrix r.
//
// When l already has r's extents it behaves exactly like AdditionStd. Any
// other combination, including a column count mismatch, is rejected.
type BroadcastAdd struct{}

// Name returns "broadcast-add".
func (BroadcastAdd) Name() string { return "broadcast-add" }

// Apply returns a new matrix with out[i][j] = l[0][j] + r[i][j].
func (BroadcastAdd) Apply(l, r *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkOperands("broadcast-add", l, r); err != nil {
		return nil, err
	}
	if l.SameExtent(r) {
		return AdditionStd{}.Apply(l, r)
	}
	if l.Rows() != 1 || l.Cols() != r.Cols() {
		return nil, matrix.NewShapeError("broadcast-add", l, r, matrix.ErrSizeMismatch)
	}

	out := matrix.New(r.Rows(), r.Cols())
	bias := l.Row(0)
	for i := 0; i < r.Rows(); i++ {
		addFloat32(out.Row(i), bias, r.Row(i))
	}
	return out, nil
}

func addFloat32(result, a, b []float32) {
	for i := range result {
		result[i] = a[i] + b[i]
	}
}
