package nn

import (
	"fmt"
	"log/slog"

	"github.com/born-ml/stepnet/internal/tensor"
)

// Layer is an affine layer made of two slots: a weights step followed by a
// bias step.
//
// Example:
//
//	layer := nn.NewLayer(nil, nil)
//	layer.Add(nn.NewMatrixMultiplyStep(2000, 1000)) // weights slot
//	layer.Add(nn.NewAddStep(1000))                  // bias slot
//	out, err := layer.Forward(x)                    // (x · W) + b
type Layer struct {
	weights Step
	bias    Step
}

// NewLayer creates a layer from its two slots. Either may be nil and filled
// later with Add.
func NewLayer(weights, bias Step) *Layer {
	return &Layer{weights: weights, bias: bias}
}

// NewDenseLayer returns a complete layer mapping inputs of width in to
// outputs of width out. Weights and bias start at zero.
func NewDenseLayer(in, out int) *Layer {
	return NewLayer(NewMatrixMultiplyStep(in, out), NewAddStep(out))
}

// Add fills the weights slot if it is empty, otherwise the bias slot.
// Once both slots are filled the step is ignored and Add returns false.
//
// Panics if step is nil.
func (l *Layer) Add(step Step) bool {
	if step == nil {
		panic("nn: Layer.Add: nil step")
	}

	switch {
	case l.weights == nil:
		l.weights = step
	case l.bias == nil:
		l.bias = step
	default:
		slog.Debug("layer is full, ignoring step", "step", fmt.Sprintf("%T", step))
		return false
	}
	return true
}

// Weights returns the weights slot, or nil if it is empty.
func (l *Layer) Weights() Step { return l.weights }

// Bias returns the bias slot, or nil if it is empty.
func (l *Layer) Bias() Step { return l.bias }

// Complete reports whether both slots are filled.
func (l *Layer) Complete() bool {
	return l.weights != nil && l.bias != nil
}

// Name returns "layer".
func (l *Layer) Name() string { return "layer" }

// Forward returns bias.Forward(weights.Forward(in)).
func (l *Layer) Forward(in *tensor.Tensor) (*tensor.Tensor, error) {
	return run(l, in)
}

func (l *Layer) doForward(in *tensor.Tensor) (*tensor.Tensor, error) {
	if !l.Complete() {
		return nil, ErrIncompleteLayer
	}

	h, err := l.weights.Forward(in)
	if err != nil {
		return nil, fmt.Errorf("layer weights: %w", err)
	}

	out, err := l.bias.Forward(h)
	if err != nil {
		return nil, fmt.Errorf("layer bias: %w", err)
	}
	return out, nil
}

// Parameters returns the parameters of the weights slot followed by those
// of the bias slot.
func (l *Layer) Parameters() []*tensor.Tensor {
	var params []*tensor.Tensor
	if l.weights != nil {
		params = append(params, l.weights.Parameters()...)
	}
	if l.bias != nil {
		params = append(params, l.bias.Parameters()...)
	}
	return params
}
