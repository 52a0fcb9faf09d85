package ops

import (
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/stepnet/internal/envconfig"
	"github.com/born-ml/stepnet/internal/matrix"
)

// MultiplicationDNC multiplies by recursive divide-and-conquer.
//
// The product is cut along its largest extent. Cuts across output rows or
// output columns produce two blocks that write disjoint parts of the result,
// so one half is forked and the other runs on the current goroutine before
// both are joined. Cuts across the contraction dimension update the same
// block, so the second half runs only after the first has finished. Blocks
// whose extents are all at most LeafSize are multiplied directly.
//
// For square power-of-two inputs this is the classic quadrant recursion.
// Summation order differs from MultiplicationNaive, so results agree only
// up to float rounding (exactly for small integer-valued inputs).
type MultiplicationDNC struct {
	// LeafSize is the block edge that stops recursion. Zero reads
	// STEPNET_DNC_LEAF (default 64).
	LeafSize int
}

// Name returns "dnc".
func (MultiplicationDNC) Name() string { return "dnc" }

// Apply returns l x r. Requires l.Cols() == r.Rows().
func (d MultiplicationDNC) Apply(l, r *matrix.Matrix) (*matrix.Matrix, error) {
	if err := checkInnerDimension("dnc", l, r); err != nil {
		return nil, err
	}

	leaf := d.LeafSize
	if leaf <= 0 {
		leaf = max(int(envconfig.LeafSize()), 1)
	}

	m, k, n := l.Rows(), l.Cols(), r.Cols()
	out := matrix.New(m, n)
	blk := dncBlock{
		a: l.Data(), b: r.Data(), c: out.Data(),
		k: k, n: n, leaf: leaf,
	}
	blk.mul(0, m, 0, n, 0, k)
	return out, nil
}

// dncBlock holds the operand buffers shared by every recursion level.
// Row strides: a has k columns, b and c have n columns.
type dncBlock struct {
	a, b, c []float32
	k, n    int
	leaf    int
}

// mul accumulates a[i0:i1, k0:k1] x b[k0:k1, j0:j1] into c[i0:i1, j0:j1].
func (d *dncBlock) mul(i0, i1, j0, j1, k0, k1 int) {
	mi, nj, kk := i1-i0, j1-j0, k1-k0
	if mi == 0 || nj == 0 || kk == 0 {
		return
	}
	if mi <= d.leaf && nj <= d.leaf && kk <= d.leaf {
		d.base(i0, i1, j0, j1, k0, k1)
		return
	}

	switch {
	case mi >= nj && mi >= kk:
		mid := i0 + mi/2
		d.fork(
			func() { d.mul(i0, mid, j0, j1, k0, k1) },
			func() { d.mul(mid, i1, j0, j1, k0, k1) },
		)
	case nj >= kk:
		mid := j0 + nj/2
		d.fork(
			func() { d.mul(i0, i1, j0, mid, k0, k1) },
			func() { d.mul(i0, i1, mid, j1, k0, k1) },
		)
	default:
		mid := k0 + kk/2
		d.mul(i0, i1, j0, j1, k0, mid)
		d.mul(i0, i1, j0, j1, mid, k1)
	}
}

// fork runs left on a new goroutine and right on the caller, then joins.
func (d *dncBlock) fork(left, right func()) {
	var g errgroup.Group
	g.Go(func() error {
		left()
		return nil
	})
	right()
	_ = g.Wait() // Halves never fail; Wait is the join barrier.
}

func (d *dncBlock) base(i0, i1, j0, j1, k0, k1 int) {
	for i := i0; i < i1; i++ {
		aRow := d.a[i*d.k+k0 : i*d.k+k1]
		cRow := d.c[i*d.n : (i+1)*d.n]
		for j := j0; j < j1; j++ {
			sum := cRow[j]
			for kIdx, av := range aRow {
				sum += float32(av * d.b[(k0+kIdx)*d.n+j])
			}
			cRow[j] = sum
		}
	}
}
