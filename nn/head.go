package nn

import (
	"gonum.org/v1/gonum/mat"
)

// GaussianHead is the variational encoder block: a shared trunk followed by
// two linear heads emitting the posterior mean μ and log-variance log σ².
//
//	x ──trunk──▶ h ──μ-head──────▶ μ
//	              └─logσ²-head──▶ log σ²
//
// With no hidden widths the trunk is skipped and both heads read x directly.
type GaussianHead struct {
	trunk  *MLP // nil when hidden is empty
	muHead *Linear
	lvHead *Linear
	in     int
	z      int
}

// NewGaussianHead builds an encoder for inDim features, trunk widths
// hidden, and a zDim-dimensional Gaussian output. Options apply to the
// trunk; the two heads stay linear by construction.
//
// Parameter names: "<name>.trunk.*", "<name>.mu.*", "<name>.logvar.*".
func NewGaussianHead(name string, inDim int, hidden []int, zDim int, opts ...MLPOption) (*GaussianHead, error) {
	if inDim <= 0 || zDim <= 0 {
		return nil, ErrBadDims
	}
	g := &GaussianHead{in: inDim, z: zDim}

	cfg := mlpConfig{hiddenAct: ActReLU, outputAct: ActIdentity}
	for _, opt := range opts {
		opt(&cfg)
	}

	headIn := inDim
	if len(hidden) > 0 {
		dims := append([]int{inDim}, hidden...)
		trunk, err := NewMLP(name+".trunk", dims, opts...)
		if err != nil {
			return nil, err
		}
		// hidden trunks end in an activation so the heads see nonlinear features
		trunk.layers = append(trunk.layers, NewActivation(ActReLU))
		g.trunk = trunk
		headIn = hidden[len(hidden)-1]
	}

	// heads share the trunk's initializer so same-shaped heads differ
	// when a stream initializer is in play
	init := cfg.init
	if init == nil {
		init = NewXavierStream(0)
	}
	var err error
	if g.muHead, err = NewLinear(name+".mu", headIn, zDim, init); err != nil {
		return nil, err
	}
	if g.lvHead, err = NewLinear(name+".logvar", headIn, zDim, init); err != nil {
		return nil, err
	}
	return g, nil
}

// InDim returns the input width.
func (g *GaussianHead) InDim() int { return g.in }

// ZDim returns the latent width.
func (g *GaussianHead) ZDim() int { return g.z }

// Forward produces (μ, log σ²) for a batch.
func (g *GaussianHead) Forward(x *mat.Dense) (mu, logvar *mat.Dense, err error) {
	h := x
	if g.trunk != nil {
		if h, err = g.trunk.Forward(x); err != nil {
			return nil, nil, err
		}
	}
	if mu, err = g.muHead.Forward(h); err != nil {
		return nil, nil, err
	}
	if logvar, err = g.lvHead.Forward(h); err != nil {
		return nil, nil, err
	}
	return mu, logvar, nil
}

// Backward merges the head gradients into the trunk:
// ∂L/∂h = muHead.Backward(gMu) + lvHead.Backward(gLogVar), then through the
// trunk to ∂L/∂x.
func (g *GaussianHead) Backward(gradMu, gradLogVar *mat.Dense) (*mat.Dense, error) {
	gh1, err := g.muHead.Backward(gradMu)
	if err != nil {
		return nil, err
	}
	gh2, err := g.lvHead.Backward(gradLogVar)
	if err != nil {
		return nil, err
	}
	gh1.Add(gh1, gh2)
	if g.trunk != nil {
		return g.trunk.Backward(gh1)
	}
	return gh1, nil
}

// Params concatenates trunk and head parameters.
func (g *GaussianHead) Params() []Param {
	var ps []Param
	if g.trunk != nil {
		ps = append(ps, g.trunk.Params()...)
	}
	ps = append(ps, g.muHead.Params()...)
	ps = append(ps, g.lvHead.Params()...)
	return ps
}

// ZeroGrad clears every gradient accumulator in the block.
func (g *GaussianHead) ZeroGrad() {
	if g.trunk != nil {
		g.trunk.ZeroGrad()
	}
	g.muHead.ZeroGrad()
	g.lvHead.ZeroGrad()
}
