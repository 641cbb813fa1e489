package mvae

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/multivae/dist"
)

// Latent returns the joint posterior mean — the standard deterministic
// embedding of a batch.
func (m *Model) Latent(views []*mat.Dense) (*mat.Dense, error) {
	post, err := m.Encode(views)
	if err != nil {
		return nil, err
	}
	return post.Mean(), nil
}

// Reconstruct encodes the views, decodes the posterior mean, and returns
// per-view reconstructions in data space: decoder means under the Gaussian
// likelihood, sigmoid probabilities under the Bernoulli one.
func (m *Model) Reconstruct(views []*mat.Dense) ([]*mat.Dense, error) {
	post, err := m.Encode(views)
	if err != nil {
		return nil, err
	}
	return m.decodeToDataSpace(post.Mean())
}

// CrossReconstruct reconstructs ALL views from the subset marked true in
// present: only the present views are encoded and fused, then every decoder
// runs on the resulting posterior mean. This is cross-view imputation —
// predicting an unobserved modality from the observed ones. Absent entries
// of views may be nil.
//
// Errors: ErrViewCount when present or views has the wrong length,
// ErrNoViewsPresent when present is all false.
func (m *Model) CrossReconstruct(views []*mat.Dense, present []bool) ([]*mat.Dense, error) {
	if len(present) != len(m.encoders) {
		return nil, ErrViewCount
	}
	if _, err := m.validateViews(views, present); err != nil {
		return nil, err
	}
	_, _, post, _, err := m.encode(views, present)
	if err != nil {
		return nil, err
	}
	return m.decodeToDataSpace(post.Mean())
}

// decodeToDataSpace runs every decoder and converts Bernoulli logits to
// probabilities.
func (m *Model) decodeToDataSpace(z *mat.Dense) ([]*mat.Dense, error) {
	out, err := m.Decode(z)
	if err != nil {
		return nil, err
	}
	if m.cfg.Likelihood == LikBernoulli {
		for i, y := range out {
			bern, berr := dist.NewBernoulli(y)
			if berr != nil {
				return nil, berr
			}
			out[i] = bern.Mean()
		}
	}
	return out, nil
}

// ActiveLatents reports which latent dimensions a sparse model still uses
// on the given batch: dimension j is active when its batch-averaged dropout
// probability α/(α+1) stays below the configured threshold.
//
// Returns ErrNotSparse on a model built without Sparse.
func (m *Model) ActiveLatents(views []*mat.Dense) ([]bool, error) {
	if !m.cfg.Sparse {
		return nil, ErrNotSparse
	}
	post, err := m.Encode(views)
	if err != nil {
		return nil, err
	}
	drop := post.DropoutProbability()
	r, c := drop.Dims()
	active := make([]bool, c)
	dd := drop.RawMatrix().Data
	for j := 0; j < c; j++ {
		var avg float64
		for i := 0; i < r; i++ {
			avg += dd[i*c+j]
		}
		avg /= float64(r)
		active[j] = avg < m.cfg.Threshold
	}
	return active, nil
}
