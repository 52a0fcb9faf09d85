package ops

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/stepnet/internal/matrix"
)

// randomMatrix fills a rows x cols matrix with values in [-1, 1).
func randomMatrix(rng *rand.Rand, rows, cols int) *matrix.Matrix {
	m := matrix.New(rows, cols)
	for _, p := range m.Scan() {
		*p = rng.Float32()*2 - 1
	}
	return m
}

// integerMatrix fills a rows x cols matrix with small integers so that every
// summation order gives the exact same float32 result.
func integerMatrix(rng *rand.Rand, rows, cols int) *matrix.Matrix {
	m := matrix.New(rows, cols)
	for _, p := range m.Scan() {
		*p = float32(rng.Intn(9) - 4)
	}
	return m
}

func mustFromSlice(t *testing.T, rows, cols int, data []float32) *matrix.Matrix {
	t.Helper()
	m, err := matrix.FromSlice(rows, cols, data)
	require.NoError(t, err)
	return m
}

func TestAdditionStd_OnesPlusOnes(t *testing.T) {
	ones := matrix.Filled(20, 100, 1)
	want := matrix.Filled(20, 100, 2)

	sum, err := AdditionStd{}.Apply(ones, ones)
	require.NoError(t, err)

	assert.True(t, sum.Equal(want))
	assert.Equal(t, 20, sum.Rows())
	assert.Equal(t, 100, sum.Cols())
}

func TestAdditionStd_CommutativeAndElementwise(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	a := randomMatrix(rng, 7, 13)
	b := randomMatrix(rng, 7, 13)

	ab, err := AdditionStd{}.Apply(a, b)
	require.NoError(t, err)
	ba, err := AdditionStd{}.Apply(b, a)
	require.NoError(t, err)

	assert.True(t, ab.Equal(ba))
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			assert.Equal(t, a.Get(i, j)+b.Get(i, j), ab.Get(i, j))
		}
	}
}

func TestAdditionStd_Mismatch(t *testing.T) {
	tests := []struct {
		name string
		l, r *matrix.Matrix
	}{
		{"both differ", matrix.New(2, 3), matrix.New(3, 2)},
		{"rows differ", matrix.New(2, 3), matrix.New(3, 3)},
		{"columns differ", matrix.New(2, 3), matrix.New(2, 4)},
		{"row vector vs matrix", matrix.New(1, 3), matrix.New(4, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := AdditionStd{}.Apply(tt.l, tt.r)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, matrix.ErrSizeMismatch)

			var se *matrix.ShapeError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, "add", se.Op)
			assert.Equal(t, tt.l.Extent(), se.Left)
		})
	}
}

func TestKernels_NilOperand(t *testing.T) {
	for _, name := range Names() {
		k, err := ByName(name)
		require.NoError(t, err)

		_, err = k.Apply(nil, matrix.New(1, 1))
		assert.ErrorIs(t, err, matrix.ErrNilMatrix, name)
		_, err = k.Apply(matrix.New(1, 1), nil)
		assert.ErrorIs(t, err, matrix.ErrNilMatrix, name)
	}
}

func TestBroadcastAdd(t *testing.T) {
	bias := mustFromSlice(t, 1, 3, []float32{1, 2, 3})
	x := mustFromSlice(t, 2, 3, []float32{10, 20, 30, 40, 50, 60})

	out, err := BroadcastAdd{}.Apply(bias, x)
	require.NoError(t, err)

	assert.Equal(t, []float32{11, 22, 33, 41, 52, 63}, out.Data())
	// Operands untouched.
	assert.Equal(t, []float32{1, 2, 3}, bias.Data())
	assert.Equal(t, []float32{10, 20, 30, 40, 50, 60}, x.Data())
}

func TestBroadcastAdd_EqualExtentsMatchesAddition(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	a := randomMatrix(rng, 4, 5)
	b := randomMatrix(rng, 4, 5)

	got, err := BroadcastAdd{}.Apply(a, b)
	require.NoError(t, err)
	want, err := AdditionStd{}.Apply(a, b)
	require.NoError(t, err)

	assert.True(t, got.Equal(want))
}

func TestBroadcastAdd_Mismatch(t *testing.T) {
	_, err := BroadcastAdd{}.Apply(matrix.New(1, 4), matrix.New(2, 3))
	assert.ErrorIs(t, err, matrix.ErrSizeMismatch)

	_, err = BroadcastAdd{}.Apply(matrix.New(2, 3), matrix.New(4, 3))
	assert.ErrorIs(t, err, matrix.ErrSizeMismatch)
}

func TestHadamard(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	a := randomMatrix(rng, 6, 9)
	b := randomMatrix(rng, 6, 9)

	std, err := HadamardStd{}.Apply(a, b)
	require.NoError(t, err)
	naive, err := HadamardNaive{}.Apply(a, b)
	require.NoError(t, err)

	assert.True(t, std.Equal(naive))
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			assert.Equal(t, a.Get(i, j)*b.Get(i, j), std.Get(i, j))
		}
	}
}

func TestHadamardNaive_Mismatch(t *testing.T) {
	_, err := HadamardNaive{}.Apply(matrix.New(2, 3), matrix.New(2, 4))
	assert.ErrorIs(t, err, matrix.ErrSizeMismatch)

	_, err = HadamardNaive{}.Apply(matrix.New(3, 3), matrix.New(2, 3))
	assert.ErrorIs(t, err, matrix.ErrSizeMismatch)
}

func TestHadamardStd_LengthMismatch(t *testing.T) {
	_, err := HadamardStd{}.Apply(matrix.New(2, 3), matrix.New(2, 4))
	assert.ErrorIs(t, err, matrix.ErrSizeMismatch)
}

func TestByName(t *testing.T) {
	k, err := ByName("parallel")
	require.NoError(t, err)
	assert.Equal(t, "parallel", k.Name())

	for _, name := range Names() {
		k, err := ByName(name)
		require.NoError(t, err)
		assert.Equal(t, name, k.Name())
	}

	_, err = ByName("strassen")
	assert.ErrorIs(t, err, ErrUnknownKernel)
}

func TestTimed(t *testing.T) {
	k := NewTimed(MultiplicationNaive{})
	a := matrix.Filled(4, 4, 1)

	for i := 0; i < 3; i++ {
		_, err := k.Apply(a, a)
		require.NoError(t, err)
	}
	_, err := k.Apply(a, matrix.New(3, 1))
	assert.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	snap := k.Timing.Snapshot()
	assert.Equal(t, 4, snap.Count)
	assert.Equal(t, "naive", k.Name())
	assert.LessOrEqual(t, snap.Min, snap.Max)
	assert.GreaterOrEqual(t, snap.Total, snap.Max)
	assert.Equal(t, snap.Total/4, snap.Mean())

	k.Timing.Reset()
	assert.Equal(t, TimingStats{}, k.Timing.Snapshot())
	assert.Zero(t, TimingStats{}.Mean())
}

func TestTimed_NilTiming(t *testing.T) {
	k := Timed[AdditionStd]{}
	out, err := k.Apply(matrix.Filled(1, 2, 1), matrix.Filled(1, 2, 1))
	require.NoError(t, err)
	assert.Equal(t, []float32{2, 2}, out.Data())
}
