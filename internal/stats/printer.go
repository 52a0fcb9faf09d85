// Package stats provides printers for tensor statistics.
//
// Both printers satisfy tensor.StatsPrinter. Attach one to an input tensor
// with WithStats and every step of a forward pass reports its output:
//
//	p := stats.NewTablePrinter(os.Stdout)
//	out, err := model.Forward(tensor.FromMatrix(x).WithStats(p))
//	p.Render()
package stats

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"

	"github.com/olekukonko/tablewriter"

	"github.com/born-ml/stepnet/internal/tensor"
)

// TablePrinter collects statistics and renders them as one table.
// It is safe for concurrent use.
type TablePrinter struct {
	mu   sync.Mutex
	w    io.Writer
	rows []tensor.Stats
}

// NewTablePrinter returns a TablePrinter that renders to w.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{w: w}
}

// PrintStats records s for the next Render.
func (p *TablePrinter) PrintStats(s tensor.Stats) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.rows = append(p.rows, s)
}

// Collected returns a copy of the statistics recorded since the last Render.
func (p *TablePrinter) Collected() []tensor.Stats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return append([]tensor.Stats(nil), p.rows...)
}

// Render writes every recorded row and clears the buffer.
func (p *TablePrinter) Render() {
	p.mu.Lock()
	rows := p.rows
	p.rows = nil
	p.mu.Unlock()

	if len(rows) == 0 {
		return
	}

	table := tablewriter.NewWriter(p.w)
	table.SetHeader([]string{"STEP", "SHAPE", "TYPE", "MIN", "MAX", "MEAN", "STDDEV", "NORM", "NONZERO"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	for _, s := range rows {
		table.Append(row(s))
	}
	table.Render()
}

func row(s tensor.Stats) []string {
	return []string{
		s.Label,
		strconv.Itoa(s.Rows) + "x" + strconv.Itoa(s.Columns),
		s.Type.String(),
		formatFloat(s.Min),
		formatFloat(s.Max),
		formatFloat(s.Mean),
		formatFloat(s.StdDev),
		formatFloat(s.Norm),
		strconv.Itoa(s.NonZero),
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

// LogPrinter emits every report as one structured log record.
type LogPrinter struct {
	logger *slog.Logger
	level  slog.Level
}

// NewLogPrinter returns a LogPrinter writing to logger at level.
// A nil logger means slog.Default().
func NewLogPrinter(logger *slog.Logger, level slog.Level) *LogPrinter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPrinter{logger: logger, level: level}
}

// PrintStats logs s.
func (p *LogPrinter) PrintStats(s tensor.Stats) {
	p.logger.Log(context.Background(), p.level, "tensor stats",
		"step", s.Label,
		"rows", s.Rows,
		"columns", s.Columns,
		"type", s.Type.String(),
		"min", s.Min,
		"max", s.Max,
		"mean", s.Mean,
		"stddev", s.StdDev,
		"norm", s.Norm,
		"nonzero", s.NonZero,
	)
}
