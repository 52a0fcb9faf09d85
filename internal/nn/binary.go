package nn

import (
	"fmt"

	"github.com/born-ml/stepnet/internal/ops"
	"github.com/born-ml/stepnet/internal/tensor"
)

// binaryStep applies kernel K to an owned operand and the incoming tensor.
// When operandLeft is set the operand is the kernel's left argument.
type binaryStep[K ops.Kernel] struct {
	kernel      K
	operand     *tensor.Tensor
	operandLeft bool
	name        string
}

func (s *binaryStep[K]) doForward(in *tensor.Tensor) (*tensor.Tensor, error) {
	l, r := in.Matrix(), s.operand.Matrix()
	if s.operandLeft {
		l, r = r, l
	}

	m, err := s.kernel.Apply(l, r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.name, err)
	}
	return tensor.Derive(m, in, s.operand), nil
}

// Name returns the step label used in errors and statistics.
func (s *binaryStep[K]) Name() string { return s.name }

// Parameters returns the owned operand.
func (s *binaryStep[K]) Parameters() []*tensor.Tensor {
	return []*tensor.Tensor{s.operand}
}

// MatrixMultiplyStep multiplies its input by an owned weight matrix.
//
// For an input of shape (batch, rows) the output has shape (batch, columns).
// The product is computed with ops.MultiplicationParallel.
type MatrixMultiplyStep struct {
	binaryStep[ops.MultiplicationParallel]
}

// NewMatrixMultiplyStep creates a step owning zero-filled, trackable leaf
// weights of shape (rows, columns).
func NewMatrixMultiplyStep(rows, columns int) *MatrixMultiplyStep {
	return &MatrixMultiplyStep{binaryStep[ops.MultiplicationParallel]{
		operand: tensor.New(rows, columns, true, true),
		name:    fmt.Sprintf("matmul(%dx%d)", rows, columns),
	}}
}

// Forward returns in · weights.
func (s *MatrixMultiplyStep) Forward(in *tensor.Tensor) (*tensor.Tensor, error) {
	return run(s, in)
}

// Weights returns the owned weight tensor.
func (s *MatrixMultiplyStep) Weights() *tensor.Tensor { return s.operand }

// AddStep adds an owned bias row to every row of its input.
type AddStep struct {
	binaryStep[ops.BroadcastAdd]
}

// NewAddStep creates a step owning a zero-filled, trackable leaf bias of
// shape (1, columns).
func NewAddStep(columns int) *AddStep {
	return &AddStep{binaryStep[ops.BroadcastAdd]{
		operand:     tensor.New(1, columns, true, true),
		operandLeft: true,
		name:        fmt.Sprintf("add(%d)", columns),
	}}
}

// Forward returns in + bias, with the bias broadcast over the rows of in.
func (s *AddStep) Forward(in *tensor.Tensor) (*tensor.Tensor, error) {
	return run(s, in)
}

// Bias returns the owned bias tensor.
func (s *AddStep) Bias() *tensor.Tensor { return s.operand }
