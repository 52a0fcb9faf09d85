// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the values that flow between stepnet steps.
//
// A Tensor wraps a dense matrix with two flags (trackable, leaf) and an
// optional statistics request. When a tensor carries a request, every step
// it flows through reports statistics about its output:
//
//	p := tensor.NewTablePrinter(os.Stdout)
//	out, err := model.Forward(tensor.FromMatrix(x).WithStats(p))
//	p.Render()
package tensor

import (
	"io"
	"log/slog"

	"github.com/born-ml/stepnet/internal/matrix"
	"github.com/born-ml/stepnet/internal/stats"
	"github.com/born-ml/stepnet/internal/tensor"
)

// Tensor is a matrix with graph-tracking metadata.
type Tensor = tensor.Tensor

// New creates a zero-filled rows x columns tensor.
func New(rows, columns int, trackable, isLeaf bool) *Tensor {
	return tensor.New(rows, columns, trackable, isLeaf)
}

// FromMatrix wraps m as an untracked leaf tensor.
func FromMatrix(m *matrix.Matrix) *Tensor {
	return tensor.FromMatrix(m)
}

// Statistics

// Stats summarises the values of a tensor.
type Stats = tensor.Stats

// StatsPrinter consumes computed statistics.
type StatsPrinter = tensor.StatsPrinter

// StatsPrinterFunc adapts a function to StatsPrinter.
type StatsPrinterFunc = tensor.StatsPrinterFunc

// TablePrinter collects statistics and renders them as a table.
type TablePrinter = stats.TablePrinter

// NewTablePrinter returns a TablePrinter rendering to w.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return stats.NewTablePrinter(w)
}

// LogPrinter logs every report as a structured record.
type LogPrinter = stats.LogPrinter

// NewLogPrinter returns a LogPrinter writing to logger at level.
func NewLogPrinter(logger *slog.Logger, level slog.Level) *LogPrinter {
	return stats.NewLogPrinter(logger, level)
}
