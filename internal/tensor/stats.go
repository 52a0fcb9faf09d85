package tensor

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/born-ml/stepnet/internal/matrix"
)

// Stats summarises the values of a tensor.
type Stats struct {
	Label   string
	Rows    int
	Columns int
	Type    matrix.Type
	Min     float64
	Max     float64
	Mean    float64
	StdDev  float64 // population standard deviation
	Norm    float64 // L2 norm
	NonZero int
}

// StatsPrinter consumes computed statistics. Implementations live in
// internal/stats.
type StatsPrinter interface {
	PrintStats(s Stats)
}

// StatsPrinterFunc adapts a function to StatsPrinter.
type StatsPrinterFunc func(Stats)

// PrintStats calls f(s).
func (f StatsPrinterFunc) PrintStats(s Stats) { f(s) }

// ComputeStats summarises the tensor's current values. Empty tensors yield
// zero-valued statistics.
func (t *Tensor) ComputeStats(label string) Stats {
	s := Stats{
		Label:   label,
		Rows:    t.Rows(),
		Columns: t.Cols(),
		Type:    t.data.Type(),
	}

	data := t.data.Data()
	if len(data) == 0 {
		return s
	}

	x := make([]float64, len(data))
	for i, v := range data {
		x[i] = float64(v)
		if v != 0 {
			s.NonZero++
		}
	}

	s.Min = floats.Min(x)
	s.Max = floats.Max(x)
	s.Mean, s.StdDev = stat.PopMeanStdDev(x, nil)
	s.Norm = floats.Norm(x, 2)
	return s
}
