package mvae

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/multivae/dist"
	"github.com/katalvlaran/multivae/join"
	"github.com/katalvlaran/multivae/nn"
)

// Model is a multi-view variational autoencoder: one GaussianHead encoder
// and one MLP decoder per view, plus a joiner fusing the per-view
// posteriors into q(z|x₁..x_V).
type Model struct {
	cfg      Config
	encoders []*nn.GaussianHead
	decoders []*nn.MLP
	joiner   join.Joiner
	rng      *rand.Rand
}

// New builds a model from a validated config. Decoder trunks mirror the
// encoder hidden widths in reverse. Equal configs build identical models.
//
// Errors: ErrBadConfig, ErrBadJoin, ErrBadLikelihood, ErrBadBeta,
// ErrBadThreshold.
func New(cfg Config) (*Model, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	m := &Model{cfg: cfg, rng: rngFromSeed(cfg.Seed)}

	// one weight stream for the whole build: components constructed in a
	// fixed order receive decorrelated, reproducible initializations
	seed := uint64(cfg.Seed)
	if cfg.Seed == 0 {
		seed = uint64(defaultRNGSeed)
	}
	init := nn.NewXavierStream(seed)

	reversed := make([]int, len(cfg.HiddenDims))
	for i, h := range cfg.HiddenDims {
		reversed[len(cfg.HiddenDims)-1-i] = h
	}

	for i, d := range cfg.InputDims {
		enc, err := nn.NewGaussianHead(
			fmt.Sprintf("enc%d", i), d, cfg.HiddenDims, cfg.ZDim,
			nn.WithInitializer(init),
		)
		if err != nil {
			return nil, err
		}
		m.encoders = append(m.encoders, enc)

		decDims := append(append([]int{cfg.ZDim}, reversed...), d)
		dec, err := nn.NewMLP(
			fmt.Sprintf("dec%d", i), decDims,
			nn.WithInitializer(init),
		)
		if err != nil {
			return nil, err
		}
		m.decoders = append(m.decoders, dec)
	}

	switch cfg.Join {
	case JoinPoE:
		m.joiner = join.NewProductOfExperts()
	case JoinMean:
		m.joiner = join.NewMeanOfExperts()
	}
	return m, nil
}

// Config returns the model's configuration.
func (m *Model) Config() Config { return m.cfg }

// NumViews returns the view count.
func (m *Model) NumViews() int { return len(m.encoders) }

// Params concatenates every encoder and decoder parameter, in build order.
func (m *Model) Params() []nn.Param {
	var ps []nn.Param
	for _, e := range m.encoders {
		ps = append(ps, e.Params()...)
	}
	for _, d := range m.decoders {
		ps = append(ps, d.Params()...)
	}
	return ps
}

// ZeroGrad clears every gradient accumulator.
func (m *Model) ZeroGrad() {
	for _, e := range m.encoders {
		e.ZeroGrad()
	}
	for _, d := range m.decoders {
		d.ZeroGrad()
	}
}

// validateViews enforces the per-entry-point input contract: correct view
// count, per-view widths from the config, and equal row counts. A present
// mask of nil means all views are required.
func (m *Model) validateViews(views []*mat.Dense, present []bool) (rows int, err error) {
	if len(views) != len(m.encoders) {
		return 0, ErrViewCount
	}
	rows = -1
	for i, v := range views {
		if present != nil && !present[i] {
			continue
		}
		if v == nil {
			return 0, ErrNilView
		}
		r, c := v.Dims()
		if c != m.cfg.InputDims[i] {
			return 0, ErrViewDim
		}
		if rows == -1 {
			rows = r
		} else if r != rows {
			return 0, ErrViewRows
		}
	}
	if rows <= 0 {
		return 0, ErrNoViewsPresent
	}
	return rows, nil
}

// encode runs every selected encoder and fuses the posteriors. Per-view
// μ and σ² slices are returned for the training backward pass; entries for
// absent views are nil and skipped by the joiner input.
func (m *Model) encode(views []*mat.Dense, present []bool) (mus, vars []*mat.Dense, post *dist.Normal, sel []int, err error) {
	nv := len(m.encoders)
	mus = make([]*mat.Dense, nv)
	vars = make([]*mat.Dense, nv)

	var joinMus, joinVars []*mat.Dense
	for i := 0; i < nv; i++ {
		if present != nil && !present[i] {
			continue
		}
		mu, logvar, ferr := m.encoders[i].Forward(views[i])
		if ferr != nil {
			return nil, nil, nil, nil, ferr
		}
		va := mat.DenseCopyOf(logvar)
		vd := va.RawMatrix().Data
		for k := range vd {
			vd[k] = math.Exp(vd[k])
		}
		mus[i] = mu
		vars[i] = va
		joinMus = append(joinMus, mu)
		joinVars = append(joinVars, va)
		sel = append(sel, i)
	}

	jmu, jva, jerr := m.joiner.Join(joinMus, joinVars)
	if jerr != nil {
		return nil, nil, nil, nil, jerr
	}
	post, err = dist.NewNormal(jmu, jva)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return mus, vars, post, sel, nil
}

// Encode fuses all views into the joint posterior q(z|x₁..x_V).
func (m *Model) Encode(views []*mat.Dense) (*dist.Normal, error) {
	if _, err := m.validateViews(views, nil); err != nil {
		return nil, err
	}
	_, _, post, _, err := m.encode(views, nil)
	return post, err
}

// Decode maps latent codes through every decoder. Outputs are raw decoder
// heads: means under LikGaussian, logits under LikBernoulli.
func (m *Model) Decode(z *mat.Dense) ([]*mat.Dense, error) {
	if z == nil {
		return nil, ErrNilView
	}
	out := make([]*mat.Dense, len(m.decoders))
	for i, d := range m.decoders {
		y, err := d.Forward(z)
		if err != nil {
			return nil, err
		}
		out[i] = y
	}
	return out, nil
}

// ForwardResult bundles one pass through the model.
type ForwardResult struct {
	// Posterior is the joint q(z|x).
	Posterior *dist.Normal

	// Z is the reparameterized draw the reconstructions came from.
	Z *mat.Dense

	// Recons holds raw decoder outputs, one per view.
	Recons []*mat.Dense
}

// Forward encodes, samples, and decodes.
func (m *Model) Forward(views []*mat.Dense) (*ForwardResult, error) {
	if _, err := m.validateViews(views, nil); err != nil {
		return nil, err
	}
	_, _, post, _, err := m.encode(views, nil)
	if err != nil {
		return nil, err
	}
	z, _ := post.Rsample(m.rng)
	recons, err := m.Decode(z)
	if err != nil {
		return nil, err
	}
	return &ForwardResult{Posterior: post, Z: z, Recons: recons}, nil
}
