package nn

import (
	"math"
	"math/rand"

	"github.com/born-ml/stepnet/internal/tensor"
)

// Initializer fills a parameter tensor in place.
type Initializer func(p *tensor.Tensor)

// Constant sets every element to v.
func Constant(v float32) Initializer {
	return func(p *tensor.Tensor) {
		for _, e := range p.Matrix().Scan() {
			*e = v
		}
	}
}

// Uniform draws every element from U(lo, hi) using rng.
func Uniform(lo, hi float64, rng *rand.Rand) Initializer {
	return func(p *tensor.Tensor) {
		for _, e := range p.Matrix().Scan() {
			*e = float32(lo + rng.Float64()*(hi-lo))
		}
	}
}

// Xavier (Glorot) initialization.
//
// Draws from U(-sqrt(6/(fan_in + fan_out)), sqrt(6/(fan_in + fan_out))),
// taking fan_in and fan_out as the parameter's rows and columns. Row-vector
// parameters (biases) have fan_in 1.
func Xavier(rng *rand.Rand) Initializer {
	return func(p *tensor.Tensor) {
		fanIn, fanOut := p.Rows(), p.Cols()
		if fanIn+fanOut == 0 {
			return
		}
		bound := math.Sqrt(6.0 / float64(fanIn+fanOut))
		Uniform(-bound, bound, rng)(p)
	}
}

// Initialize applies init to every parameter of step.
func Initialize(step Step, init Initializer) {
	for _, p := range step.Parameters() {
		init(p)
	}
}

// NewRand returns a seeded source for Uniform and Xavier.
func NewRand(seed int64) *rand.Rand {
	//nolint:gosec // Using math/rand for weight initialization (not security-critical)
	return rand.New(rand.NewSource(seed))
}
