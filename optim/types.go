// Package optim: the Optimizer contract and sentinel errors.
package optim

import (
	"errors"

	"github.com/katalvlaran/multivae/nn"
)

// Sentinel errors for optimizer construction and stepping.
var (
	// ErrBadLearningRate indicates a non-positive or non-finite learning rate.
	ErrBadLearningRate = errors.New("optim: learning rate must be positive")

	// ErrBadMomentum indicates momentum outside [0, 1).
	ErrBadMomentum = errors.New("optim: momentum must be in [0,1)")

	// ErrBadBeta indicates an Adam beta outside (0, 1).
	ErrBadBeta = errors.New("optim: beta must be in (0,1)")

	// ErrBadEpsilon indicates a non-positive Adam epsilon.
	ErrBadEpsilon = errors.New("optim: epsilon must be positive")

	// ErrBadWeightDecay indicates a negative weight decay.
	ErrBadWeightDecay = errors.New("optim: weight decay must be non-negative")

	// ErrShapeDrift indicates a named parameter changed shape between Steps.
	ErrShapeDrift = errors.New("optim: parameter shape changed between steps")

	// ErrNilParam indicates a Param with a nil weight or gradient matrix.
	ErrNilParam = errors.New("optim: nil parameter matrix")
)

// Optimizer updates parameters in place from their accumulated gradients.
// Implementations keep per-parameter state keyed by Param.Name and are not
// safe for concurrent use.
type Optimizer interface {
	Step(params []nn.Param) error
}

// checkParams validates the shared Step preconditions.
func checkParams(params []nn.Param) error {
	for _, p := range params {
		if p.W == nil || p.G == nil {
			return ErrNilParam
		}
		wr, wc := p.W.Dims()
		gr, gc := p.G.Dims()
		if wr != gr || wc != gc {
			return ErrShapeDrift
		}
	}
	return nil
}
