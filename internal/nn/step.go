// Package nn implements the step graph of stepnet.
//
// A Step is a node of a forward-only computation tree. Leaf steps own one
// operand (weights or bias) and apply an arithmetic kernel to it and the
// incoming tensor. Composite steps (Layer, Sequential) own their children
// and thread the tensor through them:
//
//	model := nn.NewSequential(
//	    nn.NewDenseLayer(784, 128),
//	    nn.NewActivation(nn.ReLU{}),
//	    nn.NewDenseLayer(128, 10),
//	)
//	out, err := model.Forward(tensor.FromMatrix(x))
//
// The tree is built once and never changes shape during a forward pass.
// Steps hold no per-call state, so one tree may serve concurrent passes.
package nn

import (
	"errors"

	"github.com/born-ml/stepnet/internal/tensor"
)

// ErrIncompleteLayer is returned when a Layer is run before both of its
// slots are filled.
var ErrIncompleteLayer = errors.New("nn: layer has an empty slot")

// Step is the interface implemented by every node of the graph.
type Step interface {
	// Forward computes the step's output for in. Passing nil panics.
	Forward(in *tensor.Tensor) (*tensor.Tensor, error)

	// Parameters returns the leaf tensors owned by the step and its
	// children, in forward order.
	Parameters() []*tensor.Tensor
}

// kind is what every concrete step implements on top of Step.
type kind interface {
	doForward(in *tensor.Tensor) (*tensor.Tensor, error)
	Name() string
}

// run is the shared body of every Forward method. It rejects a nil input,
// runs the step and reports statistics on the output when they were
// requested.
func run[S kind](s S, in *tensor.Tensor) (*tensor.Tensor, error) {
	if in == nil {
		panic("nn: " + s.Name() + ": Forward called with nil input")
	}

	out, err := s.doForward(in)
	if err != nil {
		return nil, err
	}

	if out.HasStats() {
		out.ReportStats(s.Name())
	}
	return out, nil
}
