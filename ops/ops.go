// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ops provides stepnet's arithmetic kernels.
//
// Every kernel takes two matrices and returns a newly allocated result:
//
//	out, err := ops.MultiplicationParallel{}.Apply(a, b)
//
// Kernels can also be looked up by name:
//
//	k, err := ops.ByName("dnc")
package ops

import (
	"github.com/born-ml/stepnet/internal/ops"
)

// Kernel is an arithmetic strategy.
type Kernel = ops.Kernel

// ErrUnknownKernel is returned by ByName for unregistered names.
var ErrUnknownKernel = ops.ErrUnknownKernel

// Elementwise kernels.
type (
	AdditionStd   = ops.AdditionStd
	BroadcastAdd  = ops.BroadcastAdd
	HadamardStd   = ops.HadamardStd
	HadamardNaive = ops.HadamardNaive
)

// Multiplication kernels.
type (
	MultiplicationNaive    = ops.MultiplicationNaive
	MultiplicationParallel = ops.MultiplicationParallel
	MultiplicationDNC      = ops.MultiplicationDNC
	MultiplicationBLAS     = ops.MultiplicationBLAS
)

// Timing accumulates kernel durations.
type Timing = ops.Timing

// TimingStats is a snapshot of a Timing.
type TimingStats = ops.TimingStats

// ByName returns the kernel registered under name.
func ByName(name string) (Kernel, error) { return ops.ByName(name) }

// Names lists the registered kernel names.
func Names() []string { return ops.Names() }

// Timed wraps a kernel and records the duration of every call.
type Timed[K Kernel] = ops.Timed[K]

// NewTimed wraps k with a fresh Timing.
func NewTimed[K Kernel](k K) Timed[K] { return ops.NewTimed(k) }
