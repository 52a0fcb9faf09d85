// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the steps that make up a stepnet model.
//
// # Overview
//
// This package contains:
//   - Leaf steps: MatrixMultiplyStep (weights), AddStep (bias)
//   - Composite steps: Layer, Sequential
//   - Activations: Sigmoid, SigmoidDerivative, ReLU, Tanh
//   - Initialization: Constant, Uniform, Xavier
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/stepnet/matrix"
//	    "github.com/born-ml/stepnet/nn"
//	    "github.com/born-ml/stepnet/tensor"
//	)
//
//	func main() {
//	    // Build a simple MLP
//	    model := nn.NewSequential(
//	        nn.NewDenseLayer(784, 128),
//	        nn.NewActivation(nn.ReLU{}),
//	        nn.NewDenseLayer(128, 10),
//	    )
//	    nn.Initialize(model, nn.Xavier(nn.NewRand(1)))
//
//	    // Forward pass
//	    output, err := model.Forward(tensor.FromMatrix(matrix.Filled(1, 784, 0.5)))
//	}
//
// # Layers
//
// A Layer has two slots filled in order: the weights step, then the bias
// step. Further steps passed to Add are ignored. Running a Layer with an
// empty slot returns ErrIncompleteLayer.
//
// # Errors
//
// Extent mismatches abort the forward pass. The returned error wraps
// matrix.ErrDimensionMismatch or matrix.ErrSizeMismatch and names the
// failing step; Sequential adds the index of the failing child.
package nn
