package ops

import (
	"github.com/born-ml/stepnet/internal/matrix"
)

// HadamardStd computes the elementwise product over a linear scan.
//
// The result takes l's rows and r's columns. Callers are expected to pass
// equal extents; only operands whose element counts differ are rejected,
// since those would read past the end of a buffer.
type HadamardStd struct{}

// Name returns "hadamard".
func (HadamardStd) Name() string { return "hadamard" }

// Apply returns a new matrix with out[i] = l[i] * r[i].
func (HadamardStd) Apply(l, r *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkOperands("hadamard", l, r); err != nil {
		return nil, err
	}
	if l.Len() != r.Len() || l.Rows()*r.Cols() != l.Len() {
		return nil, matrix.NewShapeError("hadamard", l, r, matrix.ErrSizeMismatch)
	}

	out := matrix.New(l.Rows(), r.Cols())
	res, a, b := out.Data(), l.Data(), r.Data()
	for i := range res {
		res[i] = a[i] * b[i]
	}
	return out, nil
}

// HadamardNaive computes the elementwise product by explicit row/column
// indexing. Operands must have identical extents.
type HadamardNaive struct{}

// Name returns "hadamard-naive".
func (HadamardNaive) Name() string { return "hadamard-naive" }

// Apply returns a new matrix with out[i][j] = l[i][j] * r[i][j].
func (HadamardNaive) Apply(l, r *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkSameExtent("hadamard-naive", l, r); err != nil {
		return nil, err
	}

	out := matrix.New(l.Rows(), r.Cols())
	for i := 0; i < l.Rows(); i++ {
		for j := 0; j < r.Cols(); j++ {
			out.Put(i, j, l.Get(i, j)*r.Get(i, j))
		}
	}
	return out, nil
}
