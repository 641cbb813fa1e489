package mvae

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/multivae/dist"
)

// matSum adds up every entry of a dense matrix.
func matSum(a *mat.Dense) float64 {
	var s float64
	for _, v := range a.RawMatrix().Data {
		s += v
	}
	return s
}

// onesLike returns a matrix of ones matching m's shape.
func onesLike(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	d := out.RawMatrix().Data
	for i := range d {
		d[i] = 1
	}
	return out
}

// reconTerm scores one view's reconstruction y against the observation x
// under the configured likelihood and returns both the batch-averaged
// log-likelihood and the gradient ∂(−LL)/∂y needed by the backward pass.
//
// Gaussian (unit variance, y is the predicted mean):
//
//	grad = (y − x) / B
//
// Bernoulli (y holds logits):
//
//	grad = (sigmoid(y) − x) / B
func (m *Model) reconTerm(x, y *mat.Dense) (ll float64, grad *mat.Dense, err error) {
	rows, _ := x.Dims()
	b := float64(rows)

	switch m.cfg.Likelihood {
	case LikBernoulli:
		bern, berr := dist.NewBernoulli(y)
		if berr != nil {
			return 0, nil, berr
		}
		lp, lerr := bern.LogProb(x)
		if lerr != nil {
			return 0, nil, lerr
		}
		ll = matSum(lp) / b

		grad = bern.Mean()
		grad.Sub(grad, x)
		grad.Scale(1/b, grad)
		return ll, grad, nil

	default: // LikGaussian
		gauss, gerr := dist.NewNormal(y, onesLike(y))
		if gerr != nil {
			return 0, nil, gerr
		}
		lp, lerr := gauss.LogProb(x)
		if lerr != nil {
			return 0, nil, lerr
		}
		ll = matSum(lp) / b

		grad = mat.DenseCopyOf(y)
		grad.Sub(grad, x)
		grad.Scale(1/b, grad)
		return ll, grad, nil
	}
}

// klTerm evaluates the configured KL of the joint posterior, summed over
// latent dimensions and averaged over the batch.
func (m *Model) klTerm(post *dist.Normal) (float64, error) {
	rows, _ := post.Dims()
	var kl *mat.Dense
	if m.cfg.Sparse {
		kl = post.SparseKL()
	} else {
		var err error
		if kl, err = post.KL(nil); err != nil {
			return 0, err
		}
	}
	return matSum(kl) / float64(rows), nil
}

// klGrads returns ∂(β·KL/B) with respect to the joint μ and σ².
//
// Standard KL against N(0, I): ∂KL/∂μ = μ, ∂KL/∂σ² = ½(1 − 1/σ²).
func (m *Model) klGrads(post *dist.Normal) (gMu, gVar *mat.Dense) {
	rows, _ := post.Dims()
	scale := m.cfg.Beta / float64(rows)

	if m.cfg.Sparse {
		gMu, gVar = post.SparseKLGrad()
		gMu.Scale(scale, gMu)
		gVar.Scale(scale, gVar)
		return gMu, gVar
	}

	r, c := post.Dims()
	gMu = mat.NewDense(r, c, nil)
	gVar = mat.NewDense(r, c, nil)
	mu := post.Mu.RawMatrix().Data
	va := post.Var.RawMatrix().Data
	gm := gMu.RawMatrix().Data
	gv := gVar.RawMatrix().Data
	for i := range gm {
		gm[i] = scale * mu[i]
		gv[i] = scale * 0.5 * (1 - 1/va[i])
	}
	return gMu, gVar
}

// Loss evaluates the training objective on a batch without touching any
// gradient state: Total = β·KL − Σᵢ LLᵢ, each term averaged over the batch.
// The latent draw uses the model's RNG, so consecutive calls on the same
// batch differ by sampling noise.
func (m *Model) Loss(views []*mat.Dense) (LossReport, error) {
	if _, err := m.validateViews(views, nil); err != nil {
		return LossReport{}, err
	}
	_, _, post, _, err := m.encode(views, nil)
	if err != nil {
		return LossReport{}, err
	}
	kl, err := m.klTerm(post)
	if err != nil {
		return LossReport{}, err
	}

	z, _ := post.Rsample(m.rng)
	var ll float64
	for i, dec := range m.decoders {
		y, derr := dec.Forward(z)
		if derr != nil {
			return LossReport{}, derr
		}
		li, _, rerr := m.reconTerm(views[i], y)
		if rerr != nil {
			return LossReport{}, rerr
		}
		ll += li
	}

	return LossReport{Total: m.cfg.Beta*kl - ll, KL: kl, LL: ll}, nil
}
