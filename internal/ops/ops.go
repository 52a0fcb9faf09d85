// Package ops implements the arithmetic strategy kernels of stepnet.
//
// A kernel is a stateless value that consumes two matrices and returns a
// newly allocated result:
//
//	out, err := ops.MultiplicationParallel{}.Apply(x, w)
//
// Kernels never mutate their operands and never keep references to them, so
// the caller may reuse or discard the inputs after the call. Extent
// violations are reported as *matrix.ShapeError values wrapping
// matrix.ErrSizeMismatch (elementwise kernels) or matrix.ErrDimensionMismatch
// (multiplication); nothing is ever truncated or broadcast implicitly.
//
// Kernels are plain structs so steps can hold them as concrete type
// parameters.
package ops

import (
	"errors"
	"fmt"
	"sort"

	"github.com/born-ml/stepnet/internal/matrix"
)

// Kernel is the capability shared by every arithmetic strategy.
type Kernel interface {
	// Apply computes the operation on l and r and returns a new matrix.
	Apply(l, r *matrix.Matrix) (*matrix.Matrix, error)

	// Name identifies the kernel in logs and benchmark output.
	Name() string
}

// ErrUnknownKernel is returned by ByName for unregistered names.
var ErrUnknownKernel = errors.New("ops: unknown kernel")

var registry = map[string]func() Kernel{
	"add":            func() Kernel { return AdditionStd{} },
	"broadcast-add":  func() Kernel { return BroadcastAdd{} },
	"hadamard":       func() Kernel { return HadamardStd{} },
	"hadamard-naive": func() Kernel { return HadamardNaive{} },
	"naive":          func() Kernel { return MultiplicationNaive{} },
	"parallel":       func() Kernel { return MultiplicationParallel{} },
	"dnc":            func() Kernel { return MultiplicationDNC{} },
	"blas":           func() Kernel { return MultiplicationBLAS{} },
}

// ByName returns the kernel registered under name.
func ByName(name string) (Kernel, error) {
	if f, ok := registry[name]; ok {
		return f(), nil
	}
	return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownKernel, name, Names())
}

// Names lists the registered kernel names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func checkOperands(op string, l, r *matrix.Matrix) error {
	if l == nil || r == nil {
		return fmt.Errorf("%s: %w", op, matrix.ErrNilMatrix)
	}
	return nil
}

// checkSameExtent rejects operands whose rows differ or whose columns differ.
func checkSameExtent(op string, l, r *matrix.Matrix) error {
	if err := checkOperands(op, l, r); err != nil {
		return err
	}
	if l.Rows() != r.Rows() || l.Cols() != r.Cols() {
		return matrix.NewShapeError(op, l, r, matrix.ErrSizeMismatch)
	}
	return nil
}

func checkInnerDimension(op string, l, r *matrix.Matrix) error {
	if err := checkOperands(op, l, r); err != nil {
		return err
	}
	if l.Cols() != r.Rows() {
		return matrix.NewShapeError(op, l, r, matrix.ErrDimensionMismatch)
	}
	return nil
}
