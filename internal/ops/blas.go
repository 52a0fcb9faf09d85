package ops

import (
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"

	"github.com/born-ml/stepnet/internal/matrix"
)

// MultiplicationBLAS delegates the product to gonum's SGEMM.
//
// The matrices are handed to gonum as row-major views of their own
// buffers; nothing is copied on the way in or out. Gonum blocks and
// parallelises internally, so summation order differs from the naive kernel.
type MultiplicationBLAS struct{}

// Name returns "blas".
func (MultiplicationBLAS) Name() string { return "blas" }

// Apply returns l x r. Requires l.Cols() == r.Rows().
func (MultiplicationBLAS) Apply(l, r *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkInnerDimension("blas", l, r); err != nil {
		return nil, err
	}

	m, k, n := l.Rows(), l.Cols(), r.Cols()
	out := matrix.New(m, n)
	if m == 0 || n == 0 || k == 0 {
		return out, nil
	}

	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		general(l), general(r), 0, general(out))
	return out, nil
}

func general(m *matrix.Matrix) blas32.General {
	return blas32.General{
		Rows:   m.Rows(),
		Cols:   m.Cols(),
		Stride: m.Cols(),
		Data:   m.Data(),
	}
}
