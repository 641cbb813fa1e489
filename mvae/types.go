// Package mvae: configuration enums, sentinel errors, and the loss report.
package mvae

import (
	"errors"
)

// JoinType selects how per-view posteriors are fused.
type JoinType string

const (
	// JoinPoE is the precision-weighted Product-of-Experts fusion.
	JoinPoE JoinType = "PoE"

	// JoinMean averages per-view means and variances.
	JoinMean JoinType = "Mean"
)

// Likelihood selects the per-view reconstruction distribution.
type Likelihood string

const (
	// LikGaussian scores views with a unit-variance Gaussian around the
	// decoder output.
	LikGaussian Likelihood = "gaussian"

	// LikBernoulli treats decoder outputs as logits over binary views.
	LikBernoulli Likelihood = "bernoulli"
)

// Sentinel errors for model construction, training, and inference.
var (
	// ErrBadJoin is returned for a join type other than PoE or Mean.
	ErrBadJoin = errors.New("mvae: incorrect join method")

	// ErrBadLikelihood is returned for an unknown likelihood name.
	ErrBadLikelihood = errors.New("mvae: unknown likelihood")

	// ErrBadConfig is returned for empty or non-positive dimensions.
	ErrBadConfig = errors.New("mvae: invalid dimensions in config")

	// ErrBadBeta is returned for a negative or non-finite KL weight.
	ErrBadBeta = errors.New("mvae: beta must be non-negative and finite")

	// ErrBadThreshold is returned for a sparse threshold outside (0,1).
	ErrBadThreshold = errors.New("mvae: threshold must be in (0,1)")

	// ErrViewCount is returned when an input slice has the wrong number of views.
	ErrViewCount = errors.New("mvae: wrong number of views")

	// ErrViewDim is returned when a view's feature width does not match the config.
	ErrViewDim = errors.New("mvae: view dimension mismatch")

	// ErrNilView is returned when a required view is nil.
	ErrNilView = errors.New("mvae: nil view")

	// ErrViewRows is returned when views disagree on the batch row count.
	ErrViewRows = errors.New("mvae: views disagree on batch size")

	// ErrNoViewsPresent is returned by CrossReconstruct with an all-false mask.
	ErrNoViewsPresent = errors.New("mvae: at least one view must be present")

	// ErrNotSparse is returned by ActiveLatents on a non-sparse model.
	ErrNotSparse = errors.New("mvae: model was not configured as sparse")

	// ErrBadEpochs is returned by Fit for a non-positive epoch count.
	ErrBadEpochs = errors.New("mvae: epochs must be >= 1")

	// ErrNilOptimizer is returned when training without an optimizer.
	ErrNilOptimizer = errors.New("mvae: nil optimizer")

	// ErrBadCheckpoint is returned for unreadable checkpoint payloads.
	ErrBadCheckpoint = errors.New("mvae: malformed checkpoint")

	// ErrCheckpointMismatch is returned when checkpoint parameters do not
	// line up with the model built from the embedded config.
	ErrCheckpointMismatch = errors.New("mvae: checkpoint does not match model")
)

// LossReport carries the decomposed training objective:
// Total = Beta·KL − LL.
type LossReport struct {
	// Total is the minimized objective.
	Total float64

	// KL is the (unweighted) divergence term, summed over latent
	// dimensions and averaged over the batch.
	KL float64

	// LL is the log-likelihood term, summed over views and feature
	// dimensions and averaged over the batch.
	LL float64
}
