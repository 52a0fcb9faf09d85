// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"math/rand"

	"github.com/born-ml/stepnet/internal/nn"
)

// Step is the interface implemented by every node of a model.
type Step = nn.Step

// ErrIncompleteLayer is returned when a Layer runs with an empty slot.
var ErrIncompleteLayer = nn.ErrIncompleteLayer

// ErrUnknownActivation is returned by FuncByName for unregistered names.
var ErrUnknownActivation = nn.ErrUnknownActivation

// Leaf steps

// MatrixMultiplyStep multiplies its input by owned weights.
type MatrixMultiplyStep = nn.MatrixMultiplyStep

// NewMatrixMultiplyStep creates a step with zero (rows, columns) weights.
func NewMatrixMultiplyStep(rows, columns int) *MatrixMultiplyStep {
	return nn.NewMatrixMultiplyStep(rows, columns)
}

// AddStep adds an owned bias row to every input row.
type AddStep = nn.AddStep

// NewAddStep creates a step with a zero (1, columns) bias.
func NewAddStep(columns int) *AddStep {
	return nn.NewAddStep(columns)
}

// Composite steps

// Layer chains a weights step and a bias step.
type Layer = nn.Layer

// NewLayer creates a layer from its two slots; either may be nil.
//
// Example:
//
//	layer := nn.NewLayer(nn.NewMatrixMultiplyStep(2000, 1000), nn.NewAddStep(1000))
func NewLayer(weights, bias Step) *Layer {
	return nn.NewLayer(weights, bias)
}

// NewDenseLayer creates a complete (in -> out) layer.
func NewDenseLayer(in, out int) *Layer {
	return nn.NewDenseLayer(in, out)
}

// Sequential chains steps together.
type Sequential = nn.Sequential

// NewSequential creates a Sequential running steps in order.
func NewSequential(steps ...Step) *Sequential {
	return nn.NewSequential(steps...)
}

// Activations

// Func is an elementwise activation function.
type Func = nn.Func

// Activation applies a Func to every element of its input.
type Activation = nn.Activation

// NewActivation creates an activation step.
//
// Example:
//
//	act := nn.NewActivation(nn.Sigmoid{})
func NewActivation(fn Func) *Activation {
	return nn.NewActivation(fn)
}

// Activation functions.
type (
	Sigmoid           = nn.Sigmoid
	SigmoidDerivative = nn.SigmoidDerivative
	ReLU              = nn.ReLU
	Tanh              = nn.Tanh
)

// FuncByName returns the activation registered under name.
func FuncByName(name string) (Func, error) {
	return nn.FuncByName(name)
}

// Initialization

// Initializer fills a parameter tensor in place.
type Initializer = nn.Initializer

// Constant sets every element to v.
func Constant(v float32) Initializer { return nn.Constant(v) }

// Uniform draws every element from U(lo, hi).
func Uniform(lo, hi float64, rng *rand.Rand) Initializer { return nn.Uniform(lo, hi, rng) }

// Xavier draws from the Glorot uniform distribution.
func Xavier(rng *rand.Rand) Initializer { return nn.Xavier(rng) }

// Initialize applies init to every parameter of step.
func Initialize(step Step, init Initializer) { nn.Initialize(step, init) }

// NewRand returns a seeded random source for Uniform and Xavier.
func NewRand(seed int64) *rand.Rand { return nn.NewRand(seed) }
