package cli

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/stepnet/internal/matrix"
	"github.com/born-ml/stepnet/internal/ops"
	"github.com/born-ml/stepnet/internal/parallel"
)

type benchOptions struct {
	m, k, n int
	kernels []string
	repeat  int
	seed    int64
	workers int
}

func newBenchCmd() *cobra.Command {
	var opts benchOptions

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time matrix multiply kernels against each other",
		Long: `Time matrix multiply kernels on random (m x k) and (k x n) operands.

Every kernel's result is compared with the naive kernel's. Integer-valued
operands are used so all kernels must agree exactly.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return benchHandler(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.m, "m", 256, "Rows of the left operand")
	cmd.Flags().IntVar(&opts.k, "k", 256, "Inner dimension")
	cmd.Flags().IntVar(&opts.n, "n", 256, "Columns of the right operand")
	cmd.Flags().StringSliceVar(&opts.kernels, "kernels", []string{"naive", "parallel", "dnc", "blas"}, "Kernels to time")
	cmd.Flags().IntVar(&opts.repeat, "repeat", 3, "Runs per kernel")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "Random seed for the operands")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Worker goroutines for the parallel kernel (0: from environment)")

	return cmd
}

// benchHandler runs the benchmark described by opts and prints one table row
// per kernel.
func benchHandler(cmd *cobra.Command, opts benchOptions) error {
	if opts.m <= 0 || opts.k <= 0 || opts.n <= 0 {
		return fmt.Errorf("extents must be positive, got m=%d k=%d n=%d", opts.m, opts.k, opts.n)
	}
	if opts.repeat <= 0 {
		return fmt.Errorf("repeat must be positive, got %d", opts.repeat)
	}

	//nolint:gosec // benchmark operands, not security-critical
	rng := rand.New(rand.NewSource(opts.seed))
	a := randomIntMatrix(rng, opts.m, opts.k)
	b := randomIntMatrix(rng, opts.k, opts.n)

	want, err := ops.MultiplicationNaive{}.Apply(a, b)
	if err != nil {
		return err
	}

	flops := 2 * float64(opts.m) * float64(opts.k) * float64(opts.n)

	var data [][]string
	for _, name := range opts.kernels {
		kernel, err := benchKernel(strings.TrimSpace(name), opts.workers)
		if err != nil {
			return err
		}

		timed := ops.NewTimed(kernel)
		var got *matrix.Matrix
		for range opts.repeat {
			if got, err = timed.Apply(a, b); err != nil {
				return fmt.Errorf("%s: %w", kernel.Name(), err)
			}
		}

		s := timed.Timing.Snapshot()
		diff := maxAbsDiff(want, got)
		slog.Debug("bench", "kernel", kernel.Name(), "runs", s.Count, "mean", s.Mean(), "max_diff", diff)

		status := "ok"
		if diff != 0 {
			status = "MISMATCH"
		}

		data = append(data, []string{
			kernel.Name(),
			strconv.Itoa(s.Count),
			s.Mean().Round(time.Microsecond).String(),
			s.Min.Round(time.Microsecond).String(),
			s.Max.Round(time.Microsecond).String(),
			gflops(flops, s.Mean()),
			strconv.FormatFloat(diff, 'g', 3, 64),
			status,
		})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "%dx%d * %dx%d\n", opts.m, opts.k, opts.k, opts.n)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"KERNEL", "RUNS", "MEAN", "MIN", "MAX", "GFLOP/S", "MAX DIFF", "STATUS"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}

// benchKernel resolves name, applying the worker override to the parallel
// kernel. Only multiplication kernels are accepted.
func benchKernel(name string, workers int) (ops.Kernel, error) {
	if name == "parallel" && workers > 0 {
		cfg := parallel.DefaultConfig()
		cfg.NumWorkers = workers
		cfg.Enabled = workers > 1
		return ops.MultiplicationParallel{Config: cfg}, nil
	}

	kernel, err := ops.ByName(name)
	if err != nil {
		return nil, err
	}

	switch kernel.(type) {
	case ops.MultiplicationNaive, ops.MultiplicationParallel, ops.MultiplicationDNC, ops.MultiplicationBLAS:
		return kernel, nil
	default:
		return nil, fmt.Errorf("%s is not a multiplication kernel", name)
	}
}

// randomIntMatrix fills a matrix with small integers so every summation
// order gives the same float32 result.
func randomIntMatrix(rng *rand.Rand, rows, cols int) *matrix.Matrix {
	m := matrix.New(rows, cols)
	for _, p := range m.Scan() {
		*p = float32(rng.Intn(7) - 3)
	}
	return m
}

func maxAbsDiff(a, b *matrix.Matrix) float64 {
	if !a.SameExtent(b) {
		return math.Inf(1)
	}
	var d float64
	ad, bd := a.Data(), b.Data()
	for i := range ad {
		d = max(d, math.Abs(float64(ad[i])-float64(bd[i])))
	}
	return d
}

func gflops(flops float64, d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return strconv.FormatFloat(flops/d.Seconds()/1e9, 'f', 2, 64)
}
