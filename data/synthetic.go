package data

import (
	"gonum.org/v1/gonum/mat"
)

// Synthetic multi-view generator: every view is a random linear readout of
// one shared latent code plus Gaussian observation noise,
//
//	z ~ N(0, I_k),  xᵢ = z·Wᵢ + ε,  ε ~ N(0, noise²)
//
// which is the standard test bed for multi-view models: the views say
// nothing about each other except through z, so a model that reconstructs
// one view from another must have recovered the shared code.

// SyntheticOptions configures GenerateLatentViews.
type SyntheticOptions struct {
	// NumSamples is the row count n (default 256).
	NumSamples int

	// LatentDim is the shared code width k (default 4).
	LatentDim int

	// ViewDims lists the feature width of every generated view
	// (default two views of 8 features each).
	ViewDims []int

	// NoiseStd scales the per-entry observation noise (default 0.1).
	NoiseStd float64

	// Seed drives the deterministic stream (seed==0 ⇒ fixed default).
	Seed int64
}

// DefaultSyntheticOptions returns the documented defaults.
func DefaultSyntheticOptions() SyntheticOptions {
	return SyntheticOptions{
		NumSamples: 256,
		LatentDim:  4,
		ViewDims:   []int{8, 8},
		NoiseStd:   0.1,
		Seed:       0,
	}
}

// GenerateLatentViews produces a row-aligned multi-view Dataset plus the
// ground-truth latent codes that generated it.
//
// Errors: ErrNoViews for an empty ViewDims, ErrEmptyDataset for
// NumSamples < 1 or LatentDim < 1, ErrRaggedViews for a non-positive
// view width.
//
// Complexity: O(n·k·Σdᵢ) time, O(n·(k+Σdᵢ)) memory.
func GenerateLatentViews(opts SyntheticOptions) (*Dataset, *mat.Dense, error) {
	if len(opts.ViewDims) == 0 {
		return nil, nil, ErrNoViews
	}
	if opts.NumSamples < 1 || opts.LatentDim < 1 {
		return nil, nil, ErrEmptyDataset
	}
	for _, d := range opts.ViewDims {
		if d < 1 {
			return nil, nil, ErrRaggedViews
		}
	}

	rng := rngFromSeed(opts.Seed)

	// shared latent codes
	z := mat.NewDense(opts.NumSamples, opts.LatentDim, nil)
	zd := z.RawMatrix().Data
	for i := range zd {
		zd[i] = rng.NormFloat64()
	}

	views := make([]*mat.Dense, len(opts.ViewDims))
	for v, dim := range opts.ViewDims {
		// per-view random loading matrix
		w := mat.NewDense(opts.LatentDim, dim, nil)
		wd := w.RawMatrix().Data
		for i := range wd {
			wd[i] = rng.NormFloat64()
		}

		x := mat.NewDense(opts.NumSamples, dim, nil)
		x.Mul(z, w)
		if opts.NoiseStd > 0 {
			xd := x.RawMatrix().Data
			for i := range xd {
				xd[i] += opts.NoiseStd * rng.NormFloat64()
			}
		}
		views[v] = x
	}

	ds, err := NewDataset(views)
	if err != nil {
		return nil, nil, err
	}
	return ds, z, nil
}
