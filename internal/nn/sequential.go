package nn

import (
	"fmt"

	"github.com/born-ml/stepnet/internal/tensor"
)

// Sequential chains steps together.
//
// Each step's output becomes the next step's input. A Sequential with no
// steps is the identity and returns its input unchanged.
//
// Example:
//
//	model := nn.NewSequential(
//	    nn.NewDenseLayer(784, 128),
//	    nn.NewActivation(nn.ReLU{}),
//	    nn.NewDenseLayer(128, 10),
//	)
//
//	out, err := model.Forward(input)
//
// This is equivalent to:
//
//	h1, _ := layer1.Forward(input)
//	h2, _ := relu.Forward(h1)
//	out, err := layer2.Forward(h2)
type Sequential struct {
	steps []Step
}

// NewSequential creates a Sequential running steps in order.
//
// Panics if any step is nil.
func NewSequential(steps ...Step) *Sequential {
	s := &Sequential{steps: make([]Step, 0, len(steps))}
	for _, step := range steps {
		s.Add(step)
	}
	return s
}

// Name returns "sequential".
func (s *Sequential) Name() string { return "sequential" }

// Forward applies all steps in sequence.
//
// The first failing step aborts the pass; its error is wrapped with the
// step's index.
func (s *Sequential) Forward(in *tensor.Tensor) (*tensor.Tensor, error) {
	return run(s, in)
}

func (s *Sequential) doForward(in *tensor.Tensor) (*tensor.Tensor, error) {
	out := in
	for i, step := range s.steps {
		var err error
		if out, err = step.Forward(out); err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
	}
	return out, nil
}

// Parameters returns the parameters of every step, in order.
func (s *Sequential) Parameters() []*tensor.Tensor {
	var params []*tensor.Tensor
	for _, step := range s.steps {
		params = append(params, step.Parameters()...)
	}
	return params
}

// Add appends a step to the sequence.
//
// Panics if step is nil.
func (s *Sequential) Add(step Step) {
	if step == nil {
		panic("nn: Sequential.Add: nil step")
	}
	s.steps = append(s.steps, step)
}

// Len returns the number of steps in the sequence.
func (s *Sequential) Len() int {
	return len(s.steps)
}

// Step returns the step at the given index.
//
// Panics if index is out of bounds.
func (s *Sequential) Step(index int) Step {
	if index < 0 || index >= len(s.steps) {
		panic("nn: Sequential.Step: index out of bounds")
	}
	return s.steps[index]
}
