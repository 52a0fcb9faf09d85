// Package modelspec reads feed-forward model definitions from YAML and
// builds step trees from them.
//
// A definition names the input width and a list of dense layers, each with
// an optional activation:
//
//	name: xor
//	input: 2
//	init:
//	  kind: xavier
//	  seed: 42
//	layers:
//	  - units: 4
//	    activation: tanh
//	  - units: 1
//	    activation: sigmoid
//
// Build turns it into Sequential(Layer(2x4), tanh, Layer(4x1), sigmoid).
package modelspec

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/stepnet/internal/nn"
)

// ErrInvalidModel is wrapped by every validation failure.
var ErrInvalidModel = errors.New("modelspec: invalid model")

// Supported initializer kinds.
const (
	InitXavier   = "xavier"
	InitUniform  = "uniform"
	InitConstant = "constant"
	InitZeros    = "zeros"
)

// Model is a feed-forward model definition.
type Model struct {
	Name   string  `yaml:"name"`
	Input  int     `yaml:"input"`
	Init   Init    `yaml:"init"`
	Layers []Layer `yaml:"layers"`
}

// Layer describes one dense layer and the activation applied after it.
type Layer struct {
	Units      int    `yaml:"units"`
	Activation string `yaml:"activation,omitempty"`
}

// Init selects how parameters are filled. An empty Kind means xavier.
type Init struct {
	Kind  string  `yaml:"kind"`
	Seed  int64   `yaml:"seed"`
	Value float32 `yaml:"value"` // constant
	Low   float64 `yaml:"low"`   // uniform
	High  float64 `yaml:"high"`  // uniform
}

// Parse decodes a model definition and validates it. Unknown fields are
// rejected.
func Parse(r io.Reader) (*Model, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m Model
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty definition", ErrInvalidModel)
		}
		return nil, fmt.Errorf("failed to parse model: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadFile parses the model definition stored at path.
func ReadFile(path string) (*Model, error) {
	//nolint:gosec // G304: model path comes from the command line
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}
	return Parse(bytes.NewReader(data))
}

// Validate checks widths, activation names and the initializer.
func (m *Model) Validate() error {
	if m.Input <= 0 {
		return fmt.Errorf("%w: input width must be positive, got %d", ErrInvalidModel, m.Input)
	}
	if len(m.Layers) == 0 {
		return fmt.Errorf("%w: no layers", ErrInvalidModel)
	}

	for i, l := range m.Layers {
		if l.Units <= 0 {
			return fmt.Errorf("%w: layer %d: units must be positive, got %d", ErrInvalidModel, i, l.Units)
		}
		if l.Activation == "" {
			continue
		}
		if _, err := nn.FuncByName(l.Activation); err != nil {
			return fmt.Errorf("%w: layer %d: %w", ErrInvalidModel, i, err)
		}
	}

	switch m.Init.Kind {
	case "", InitXavier, InitConstant, InitZeros:
	case InitUniform:
		if m.Init.Low >= m.Init.High {
			return fmt.Errorf("%w: uniform init needs low < high, got [%g, %g)", ErrInvalidModel, m.Init.Low, m.Init.High)
		}
	default:
		return fmt.Errorf("%w: unknown init kind %q", ErrInvalidModel, m.Init.Kind)
	}
	return nil
}

// Output returns the width of the model's output.
func (m *Model) Output() int {
	if len(m.Layers) == 0 {
		return m.Input
	}
	return m.Layers[len(m.Layers)-1].Units
}

// Build validates the definition and returns an initialized step tree.
func (m *Model) Build() (*nn.Sequential, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	model := nn.NewSequential()
	width := m.Input
	for _, l := range m.Layers {
		model.Add(nn.NewDenseLayer(width, l.Units))
		if l.Activation != "" {
			fn, _ := nn.FuncByName(l.Activation)
			model.Add(nn.NewActivation(fn))
		}
		width = l.Units
	}

	nn.Initialize(model, m.initializer())
	return model, nil
}

func (m *Model) initializer() nn.Initializer {
	switch m.Init.Kind {
	case InitUniform:
		return nn.Uniform(m.Init.Low, m.Init.High, nn.NewRand(m.Init.Seed))
	case InitConstant:
		return nn.Constant(m.Init.Value)
	case InitZeros:
		return nn.Constant(0)
	default:
		return nn.Xavier(nn.NewRand(m.Init.Seed))
	}
}
