package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/born-ml/stepnet/internal/envconfig"
	"github.com/born-ml/stepnet/internal/matrix"
	"github.com/born-ml/stepnet/internal/modelspec"
	"github.com/born-ml/stepnet/internal/nn"
	"github.com/born-ml/stepnet/internal/stats"
	"github.com/born-ml/stepnet/internal/tensor"
)

// maxPrintedRows bounds how many output rows forward echoes.
const maxPrintedRows = 8

type forwardOptions struct {
	model  string
	batch  int
	fill   float32
	random bool
	seed   int64
	stats  bool
}

func newForwardCmd() *cobra.Command {
	var opts forwardOptions

	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Run one forward pass through a YAML-defined model",
		Example: `  stepnet forward --model mlp.yaml --batch 4 --stats
  stepnet forward --model mlp.yaml --random --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("stats") {
				opts.stats = envconfig.Stats()
			}
			return forwardHandler(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.model, "model", "m", "", "Path to the model definition (YAML)")
	cmd.Flags().IntVar(&opts.batch, "batch", 1, "Number of input rows")
	cmd.Flags().Float32Var(&opts.fill, "fill", 1, "Value of every input element")
	cmd.Flags().BoolVar(&opts.random, "random", false, "Draw input elements from U(-1, 1) instead of --fill")
	cmd.Flags().Int64Var(&opts.seed, "seed", 1, "Random seed for --random")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "Print tensor statistics after every step")
	_ = cmd.MarkFlagRequired("model")

	return cmd
}

func forwardHandler(cmd *cobra.Command, opts forwardOptions) error {
	if opts.batch <= 0 {
		return fmt.Errorf("batch must be positive, got %d", opts.batch)
	}

	spec, err := modelspec.ReadFile(opts.model)
	if err != nil {
		return err
	}

	model, err := spec.Build()
	if err != nil {
		return err
	}
	slog.Debug("model built", "name", spec.Name, "steps", model.Len(), "parameters", len(model.Parameters()))

	x := matrix.Filled(opts.batch, spec.Input, opts.fill)
	in := tensor.FromMatrix(x)
	if opts.random {
		nn.Uniform(-1, 1, nn.NewRand(opts.seed))(in)
	}

	var printer *stats.TablePrinter
	if opts.stats {
		printer = stats.NewTablePrinter(cmd.OutOrStdout())
		in.WithStats(printer)
	}

	start := time.Now()
	out, err := model.Forward(in)
	if err != nil {
		return fmt.Errorf("forward %s: %w", opts.model, err)
	}
	elapsed := time.Since(start)

	w := cmd.OutOrStdout()
	name := spec.Name
	if name == "" {
		name = opts.model
	}
	fmt.Fprintf(w, "model %s: %dx%d -> %dx%d in %s\n",
		name, x.Rows(), x.Cols(), out.Rows(), out.Cols(), elapsed.Round(time.Microsecond))

	if printer != nil {
		printer.Render()
	}
	return printOutput(w, out.Matrix())
}

func printOutput(w io.Writer, m *matrix.Matrix) error {
	var errs []error
	rows := min(m.Rows(), maxPrintedRows)
	for i := range rows {
		values := make([]string, 0, m.Cols())
		for _, v := range m.Row(i) {
			values = append(values, strconv.FormatFloat(float64(v), 'g', 6, 32))
		}
		_, err := fmt.Fprintf(w, "[%s]\n", strings.Join(values, " "))
		errs = append(errs, err)
	}
	if m.Rows() > rows {
		_, err := fmt.Fprintf(w, "... %d more rows\n", m.Rows()-rows)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
