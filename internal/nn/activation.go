package nn

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/born-ml/stepnet/internal/tensor"
)

// ErrUnknownActivation is returned by FuncByName for unregistered names.
var ErrUnknownActivation = errors.New("nn: unknown activation")

// Func is an elementwise activation function.
type Func interface {
	Operate(x float32) float32
	Name() string
}

// Activation applies a Func to every element of its input.
//
// Example:
//
//	act := nn.NewActivation(nn.Sigmoid{})
//	out, err := act.Forward(x) // values in (0, 1)
type Activation struct {
	fn Func
}

// NewActivation creates an activation step applying fn.
//
// Panics if fn is nil.
func NewActivation(fn Func) *Activation {
	if fn == nil {
		panic("nn: NewActivation: nil function")
	}
	return &Activation{fn: fn}
}

// Func returns the applied function.
func (a *Activation) Func() Func { return a.fn }

// Name returns the function's name.
func (a *Activation) Name() string { return a.fn.Name() }

// Forward returns a new tensor holding fn(x) for every element x of in.
func (a *Activation) Forward(in *tensor.Tensor) (*tensor.Tensor, error) {
	return run(a, in)
}

func (a *Activation) doForward(in *tensor.Tensor) (*tensor.Tensor, error) {
	out := in.Matrix().Clone()
	for _, p := range out.Scan() {
		*p = a.fn.Operate(*p)
	}
	return tensor.Derive(out, in), nil
}

// Parameters returns nil; activations have no parameters.
func (a *Activation) Parameters() []*tensor.Tensor {
	return nil
}

// Sigmoid is σ(x) = 1 / (1 + exp(-x)).
type Sigmoid struct{}

// Operate returns σ(x).
func (Sigmoid) Operate(x float32) float32 {
	return float32(sigmoid(float64(x)))
}

// Name returns "sigmoid".
func (Sigmoid) Name() string { return "sigmoid" }

// SigmoidDerivative is the derivative of the sigmoid, σ(x)(1 - σ(x)).
type SigmoidDerivative struct{}

// Operate returns σ(x)(1 - σ(x)).
func (SigmoidDerivative) Operate(x float32) float32 {
	s := sigmoid(float64(x))
	return float32(s * (1 - s))
}

// Name returns "sigmoid-derivative".
func (SigmoidDerivative) Name() string { return "sigmoid-derivative" }

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// ReLU is max(0, x).
type ReLU struct{}

// Operate returns max(0, x).
func (ReLU) Operate(x float32) float32 {
	if x > 0 {
		return x
	}
	return 0
}

// Name returns "relu".
func (ReLU) Name() string { return "relu" }

// Tanh is the hyperbolic tangent.
type Tanh struct{}

// Operate returns tanh(x).
func (Tanh) Operate(x float32) float32 {
	return float32(math.Tanh(float64(x)))
}

// Name returns "tanh".
func (Tanh) Name() string { return "tanh" }

var activations = map[string]Func{
	"sigmoid":            Sigmoid{},
	"sigmoid-derivative": SigmoidDerivative{},
	"relu":               ReLU{},
	"tanh":               Tanh{},
}

// FuncByName returns the activation registered under name.
func FuncByName(name string) (Func, error) {
	if fn, ok := activations[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownActivation, name, FuncNames())
}

// FuncNames lists the registered activation names in sorted order.
func FuncNames() []string {
	names := make([]string, 0, len(activations))
	for name := range activations {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
