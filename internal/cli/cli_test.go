package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/stepnet/internal/ops"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewCLI()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeModel(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const tinyModel = `
name: tiny
input: 3
init: {kind: constant, value: 1}
layers:
  - units: 2
    activation: relu
`

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "stepnet version "+Version)
	assert.Contains(t, out, "cpu features:")
}

func TestVersionFlag(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "stepnet version")
}

func TestEnv(t *testing.T) {
	t.Setenv("STEPNET_DNC_LEAF", "32")

	out, err := execute(t, "env")
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "STEPNET_NOPARALLEL")
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "STEPNET_DNC_LEAF") {
			assert.Contains(t, line, "32")
			return
		}
	}
	t.Fatalf("STEPNET_DNC_LEAF missing from output:\n%s", out)
}

func TestBench(t *testing.T) {
	out, err := execute(t, "bench", "--m", "9", "--k", "17", "--n", "5", "--repeat", "2", "--workers", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "9x17 * 17x5")
	for _, name := range []string{"naive", "parallel", "dnc", "blas"} {
		assert.Contains(t, out, name)
	}
	assert.NotContains(t, out, "MISMATCH")
}

func TestBench_Errors(t *testing.T) {
	_, err := execute(t, "bench", "--kernels", "naive,strassen")
	assert.ErrorIs(t, err, ops.ErrUnknownKernel)

	_, err = execute(t, "bench", "--kernels", "add")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a multiplication kernel")

	_, err = execute(t, "bench", "--m", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "extents must be positive")
}

func TestForward(t *testing.T) {
	path := writeModel(t, tinyModel)

	out, err := execute(t, "forward", "--model", path, "--batch", "2")
	require.NoError(t, err)

	// [1 1 1] · ones(3x2) + [1 1] = [4 4]
	assert.Contains(t, out, "model tiny: 2x3 -> 2x2")
	assert.Equal(t, 2, strings.Count(out, "[4 4]"))
	assert.NotContains(t, out, "STEP")
}

func TestForward_Stats(t *testing.T) {
	path := writeModel(t, tinyModel)

	out, err := execute(t, "forward", "--model", path, "--stats")
	require.NoError(t, err)

	assert.Contains(t, out, "STEP")
	for _, label := range []string{"matmul(3x2)", "add(2)", "layer", "relu", "sequential"} {
		assert.Contains(t, out, label)
	}
}

func TestForward_StatsFromEnv(t *testing.T) {
	t.Setenv("STEPNET_STATS", "1")
	path := writeModel(t, tinyModel)

	out, err := execute(t, "forward", "--model", path)
	require.NoError(t, err)
	assert.Contains(t, out, "STEP")
}

func TestForward_Random(t *testing.T) {
	path := writeModel(t, tinyModel)

	a, err := execute(t, "forward", "--model", path, "--random", "--seed", "5")
	require.NoError(t, err)
	b, err := execute(t, "forward", "--model", path, "--random", "--seed", "5")
	require.NoError(t, err)

	lastLine := func(s string) string {
		lines := strings.Split(strings.TrimSpace(s), "\n")
		return lines[len(lines)-1]
	}
	assert.Equal(t, lastLine(a), lastLine(b))
}

func TestForward_Errors(t *testing.T) {
	_, err := execute(t, "forward")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"model" not set`)

	_, err = execute(t, "forward", "--model", writeModel(t, "input: 0\nlayers: [{units: 1}]"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model")

	_, err = execute(t, "forward", "--model", writeModel(t, tinyModel), "--batch", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "batch must be positive")
}

func TestForward_TruncatesOutput(t *testing.T) {
	out, err := execute(t, "forward", "--model", writeModel(t, tinyModel), "--batch", "10")
	require.NoError(t, err)

	assert.Equal(t, maxPrintedRows, strings.Count(out, "[4 4]"))
	assert.Contains(t, out, "... 2 more rows")
}
