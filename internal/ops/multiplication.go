package ops

import (
	"github.com/born-ml/stepnet/internal/matrix"
	"github.com/born-ml/stepnet/internal/parallel"
)

// MultiplicationNaive is the reference triple-loop matrix product.
// (M, K) x (K, N) -> (M, N).
type MultiplicationNaive struct{}

// Name returns "naive".
func (MultiplicationNaive) Name() string { return "naive" }

// Apply returns l x r. Requires l.Cols() == r.Rows().
func (MultiplicationNaive) Apply(l, r *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkInnerDimension("naive", l, r); err != nil {
		return nil, err
	}

	m, k, n := l.Rows(), l.Cols(), r.Cols()
	out := matrix.New(m, n)
	c, a, b := out.Data(), l.Data(), r.Data()
	for i := 0; i < m; i++ {
		matmulRow(c[i*n:(i+1)*n], a[i*k:(i+1)*k], b, n)
	}
	return out, nil
}

// MultiplicationParallel computes the same product as MultiplicationNaive
// with the output rows spread over a fork-join loop.
//
// Each row is produced by exactly one goroutine using the same k-ascending
// contraction as the naive kernel, so the two agree bit for bit.
type MultiplicationParallel struct {
	// Config controls the row loop. The zero value means parallel.FromEnv().
	Config parallel.Config
}

// Name returns "parallel".
func (MultiplicationParallel) Name() string { return "parallel" }

// Apply returns l x r. Requires l.Cols() == r.Rows().
func (p MultiplicationParallel) Apply(l, r *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkInnerDimension("parallel", l, r); err != nil {
		return nil, err
	}

	cfg := p.Config
	if cfg == (parallel.Config{}) {
		cfg = parallel.FromEnv()
	}

	m, k, n := l.Rows(), l.Cols(), r.Cols()
	out := matrix.New(m, n)
	c, a, b := out.Data(), l.Data(), r.Data()
	parallel.ForRange(m, func(start, end int) {
		for i := start; i < end; i++ {
			matmulRow(c[i*n:(i+1)*n], a[i*k:(i+1)*k], b, n)
		}
	}, cfg)
	return out, nil
}

// matmulRow computes one output row: c[j] = sum_k a[k] * b[k*n+j], with k
// ascending. The product is converted explicitly so it is rounded before the
// add and never fused, keeping every kernel that uses it bit-identical.
func matmulRow(c, a, b []float32, n int) {
	for j := range c {
		var sum float32
		for kIdx, av := range a {
			sum += float32(av * b[kIdx*n+j])
		}
		c[j] = sum
	}
}
