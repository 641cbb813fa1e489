// Package join: the Joiner contract and its sentinel errors.
package join

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for joiner execution.
var (
	// ErrNoViews is returned when Join receives zero views.
	ErrNoViews = errors.New("join: at least one view required")

	// ErrViewShapeMismatch is returned when per-view parameter matrices
	// disagree on shape, or mus and vars have different view counts.
	ErrViewShapeMismatch = errors.New("join: view shape mismatch")

	// ErrJoinNotComputed is returned by Backward before any Join call.
	ErrJoinNotComputed = errors.New("join: Backward called before Join")

	// ErrGradShapeMismatch is returned when Backward receives gradients
	// whose shape differs from the last Join output.
	ErrGradShapeMismatch = errors.New("join: gradient shape mismatch")

	// ErrNilInput is returned when a nil matrix appears among the inputs.
	ErrNilInput = errors.New("join: nil input matrix")
)

// Joiner fuses per-view posterior parameters into a joint posterior and
// routes gradients back through the fusion.
//
// Join takes one μ and one σ² matrix per view (identical shapes across
// views) and returns the joint μ and σ². Backward takes gradients with
// respect to the joint parameters and returns per-view gradients in the
// same order as the inputs to the preceding Join.
//
// A Joiner is not safe for concurrent use: Backward reads the cache left
// by the most recent Join on the same goroutine.
type Joiner interface {
	Join(mus, vars []*mat.Dense) (mu, va *mat.Dense, err error)
	Backward(gradMu, gradVar *mat.Dense) (gmus, gvars []*mat.Dense, err error)
}

// validateViews checks the common Join preconditions and returns the shared
// rows×cols shape.
func validateViews(mus, vars []*mat.Dense) (r, c int, err error) {
	if len(mus) == 0 {
		return 0, 0, ErrNoViews
	}
	if len(mus) != len(vars) {
		return 0, 0, ErrViewShapeMismatch
	}
	for i := range mus {
		if mus[i] == nil || vars[i] == nil {
			return 0, 0, ErrNilInput
		}
	}
	r, c = mus[0].Dims()
	for i := range mus {
		mr, mc := mus[i].Dims()
		vr, vc := vars[i].Dims()
		if mr != r || mc != c || vr != r || vc != c {
			return 0, 0, ErrViewShapeMismatch
		}
	}
	return r, c, nil
}
