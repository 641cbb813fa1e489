package mvae

import (
	"context"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/multivae/data"
	"github.com/katalvlaran/multivae/optim"
)

// TrainBatch runs one optimization step on a batch of aligned views:
// forward through every encoder, fuse, reparameterize, decode, then push
// analytic gradients of β·KL − Σ LL back through the whole graph and apply
// the optimizer.
//
// The gradient chain, per entry:
//
//	decoder:  ∂(−LL)/∂ŷ from reconTerm, through MLP.Backward into ∂L/∂z
//	reparam:  z = μ + σ·ε  ⇒  gμ += gz,  gσ² += gz·ε / (2σ)
//	KL:       gμ += β·∂KL/∂μ / B,  gσ² += β·∂KL/∂σ² / B
//	joiner:   joint (gμ, gσ²) mapped back to each expert
//	encoder:  gσᵢ² pulled to log-variance (gLogVar = gσ²·σ²), then
//	          GaussianHead.Backward
//
// Complexity: O(batch · (Σ layer widths)) per call.
func (m *Model) TrainBatch(views []*mat.Dense, opt optim.Optimizer) (LossReport, error) {
	if opt == nil {
		return LossReport{}, ErrNilOptimizer
	}
	if _, err := m.validateViews(views, nil); err != nil {
		return LossReport{}, err
	}

	m.ZeroGrad()

	_, vars, post, _, err := m.encode(views, nil)
	if err != nil {
		return LossReport{}, err
	}
	kl, err := m.klTerm(post)
	if err != nil {
		return LossReport{}, err
	}

	z, eps := post.Rsample(m.rng)

	// decode, score, and accumulate ∂L/∂z across views
	r, c := z.Dims()
	gz := mat.NewDense(r, c, nil)
	var ll float64
	for i, dec := range m.decoders {
		y, derr := dec.Forward(z)
		if derr != nil {
			return LossReport{}, derr
		}
		li, gy, rerr := m.reconTerm(views[i], y)
		if rerr != nil {
			return LossReport{}, rerr
		}
		ll += li
		giz, berr := dec.Backward(gy)
		if berr != nil {
			return LossReport{}, berr
		}
		gz.Add(gz, giz)
	}

	// joint-posterior gradients: KL term plus the pathwise sampling term
	gMu, gVar := m.klGrads(post)
	gm := gMu.RawMatrix().Data
	gv := gVar.RawMatrix().Data
	gzd := gz.RawMatrix().Data
	ed := eps.RawMatrix().Data
	vad := post.Var.RawMatrix().Data
	for i := range gm {
		gm[i] += gzd[i]
		gv[i] += gzd[i] * ed[i] * 0.5 / math.Sqrt(vad[i])
	}

	gmus, gvars, err := m.joiner.Backward(gMu, gVar)
	if err != nil {
		return LossReport{}, err
	}

	// per-view heads emit log σ², so gLogVar = gσ² ∘ σ²
	for i := range m.encoders {
		gLogVar := gvars[i]
		gld := gLogVar.RawMatrix().Data
		vd := vars[i].RawMatrix().Data
		for k := range gld {
			gld[k] *= vd[k]
		}
		if _, berr := m.encoders[i].Backward(gmus[i], gLogVar); berr != nil {
			return LossReport{}, berr
		}
	}

	if err = opt.Step(m.Params()); err != nil {
		return LossReport{}, err
	}
	return LossReport{Total: m.cfg.Beta*kl - ll, KL: kl, LL: ll}, nil
}

// fitConfig collects Fit options.
type fitConfig struct {
	ctx       context.Context
	epochs    int
	batchSize int
	shuffle   bool
	seed      int64
	onEpoch   func(epoch int, avg LossReport) error
}

// FitOption adjusts the training loop.
type FitOption func(*fitConfig)

// WithEpochs sets the number of passes over the dataset (default 1).
func WithEpochs(n int) FitOption {
	return func(c *fitConfig) { c.epochs = n }
}

// WithBatchSize sets the minibatch size (default 32).
func WithBatchSize(n int) FitOption {
	return func(c *fitConfig) { c.batchSize = n }
}

// WithShuffle reshuffles rows every epoch from a deterministic stream
// (seed==0 ⇒ fixed default seed).
func WithShuffle(seed int64) FitOption {
	return func(c *fitConfig) { c.shuffle = true; c.seed = seed }
}

// WithOnEpoch installs a hook invoked after each epoch with the 1-based
// epoch index and that epoch's batch-averaged loss. A non-nil hook error
// aborts Fit and is returned as-is, which makes early stopping a one-liner.
func WithOnEpoch(fn func(epoch int, avg LossReport) error) FitOption {
	return func(c *fitConfig) { c.onEpoch = fn }
}

// WithContext makes Fit return early (with ctx.Err()) once the context is
// cancelled; the check runs between batches.
func WithContext(ctx context.Context) FitOption {
	return func(c *fitConfig) { c.ctx = ctx }
}

// Fit trains the model on a dataset and returns the per-epoch averaged
// losses. The dataset must carry the model's view count and widths.
//
// Errors: ErrNilOptimizer, ErrBadEpochs, view-shape sentinels, optimizer
// errors, and ctx.Err() on cancellation.
func (m *Model) Fit(ds *data.Dataset, opt optim.Optimizer, opts ...FitOption) ([]LossReport, error) {
	if opt == nil {
		return nil, ErrNilOptimizer
	}
	cfg := fitConfig{ctx: context.Background(), epochs: 1, batchSize: 32}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.epochs < 1 {
		return nil, ErrBadEpochs
	}
	if _, err := m.validateViews(ds.Views(), nil); err != nil {
		return nil, err
	}

	lopts := []data.LoaderOption{data.WithBatchSize(cfg.batchSize)}
	if cfg.shuffle {
		lopts = append(lopts, data.WithShuffle(cfg.seed))
	}
	loader, err := data.NewLoader(ds, lopts...)
	if err != nil {
		return nil, err
	}

	history := make([]LossReport, 0, cfg.epochs)
	for epoch := 1; epoch <= cfg.epochs; epoch++ {
		var sum LossReport
		var batches int
		for {
			batch, ok := loader.Next()
			if !ok {
				break
			}
			if err = cfg.ctx.Err(); err != nil {
				return history, err
			}
			rep, terr := m.TrainBatch(batch.Views(), opt)
			if terr != nil {
				return history, terr
			}
			sum.Total += rep.Total
			sum.KL += rep.KL
			sum.LL += rep.LL
			batches++
		}
		loader.Reset()

		if batches > 0 {
			sum.Total /= float64(batches)
			sum.KL /= float64(batches)
			sum.LL /= float64(batches)
		}
		history = append(history, sum)
		if cfg.onEpoch != nil {
			if err = cfg.onEpoch(epoch, sum); err != nil {
				return history, err
			}
		}
	}
	return history, nil
}
