package nn

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// MLP is a named stack of Linear layers with an activation after every
// hidden layer and a configurable activation on the output.
type MLP struct {
	name   string
	layers []Layer
	in     int
	out    int
}

// MLPOption configures NewMLP.
type MLPOption func(*mlpConfig)

type mlpConfig struct {
	hiddenAct Activation
	outputAct Activation
	init      Initializer
}

// WithHiddenActivation selects the nonlinearity between hidden layers
// (default ActReLU).
func WithHiddenActivation(a Activation) MLPOption {
	return func(c *mlpConfig) { c.hiddenAct = a }
}

// WithOutputActivation selects the nonlinearity after the final layer
// (default ActIdentity, the right choice for regression heads and logits).
func WithOutputActivation(a Activation) MLPOption {
	return func(c *mlpConfig) { c.outputAct = a }
}

// WithInitializer selects the weight initializer for every Linear
// (default XavierUniform under the fixed-seed policy).
func WithInitializer(init Initializer) MLPOption {
	return func(c *mlpConfig) { c.init = init }
}

// NewMLP builds a perceptron through the listed widths: dims[0] is the
// input width, dims[len-1] the output width, everything between is hidden.
// At least two entries are required.
//
// Layer parameter names follow "<name>.<index>.w"/".b" with the Linear
// position in the stack as index.
//
// Errors: ErrBadDims for fewer than two dims or any non-positive width.
func NewMLP(name string, dims []int, opts ...MLPOption) (*MLP, error) {
	if len(dims) < 2 {
		return nil, ErrBadDims
	}
	cfg := mlpConfig{hiddenAct: ActReLU, outputAct: ActIdentity}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.init == nil {
		// a stream keeps stacked same-shaped layers from cloning weights
		cfg.init = NewXavierStream(0)
	}

	m := &MLP{name: name, in: dims[0], out: dims[len(dims)-1]}
	for i := 0; i+1 < len(dims); i++ {
		lin, err := NewLinear(fmt.Sprintf("%s.%d", name, i), dims[i], dims[i+1], cfg.init)
		if err != nil {
			return nil, err
		}
		m.layers = append(m.layers, lin)
		last := i+2 == len(dims)
		if last {
			if cfg.outputAct != ActIdentity {
				m.layers = append(m.layers, NewActivation(cfg.outputAct))
			}
		} else {
			m.layers = append(m.layers, NewActivation(cfg.hiddenAct))
		}
	}
	return m, nil
}

// InDim returns the input width.
func (m *MLP) InDim() int { return m.in }

// OutDim returns the output width.
func (m *MLP) OutDim() int { return m.out }

// Forward runs the stack front to back.
func (m *MLP) Forward(x *mat.Dense) (*mat.Dense, error) {
	var err error
	for _, l := range m.layers {
		if x, err = l.Forward(x); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Backward runs the stack back to front, accumulating parameter gradients.
func (m *MLP) Backward(grad *mat.Dense) (*mat.Dense, error) {
	var err error
	for i := len(m.layers) - 1; i >= 0; i-- {
		if grad, err = m.layers[i].Backward(grad); err != nil {
			return nil, err
		}
	}
	return grad, nil
}

// Params concatenates the parameters of every Linear in order.
func (m *MLP) Params() []Param {
	var ps []Param
	for _, l := range m.layers {
		ps = append(ps, l.Params()...)
	}
	return ps
}

// ZeroGrad clears every layer's gradient accumulators.
func (m *MLP) ZeroGrad() {
	for _, l := range m.layers {
		l.ZeroGrad()
	}
}
