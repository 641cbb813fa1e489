// Package nn: the Layer contract, named parameters, and sentinel errors.
package nn

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for layer construction and execution.
var (
	// ErrBadDims indicates a non-positive layer dimension.
	ErrBadDims = errors.New("nn: layer dimensions must be positive")

	// ErrNilInput indicates a nil input or gradient matrix.
	ErrNilInput = errors.New("nn: nil input matrix")

	// ErrShapeMismatch indicates an input or gradient whose columns do not
	// match the layer, or a gradient whose rows differ from the last input.
	ErrShapeMismatch = errors.New("nn: shape mismatch")

	// ErrNoForward is returned by Backward when no Forward preceded it.
	ErrNoForward = errors.New("nn: Backward called before Forward")
)

// Param pairs a learnable weight matrix with its gradient accumulator.
// Name is stable across the life of the model and keys optimizer state.
type Param struct {
	Name string
	W    *mat.Dense
	G    *mat.Dense
}

// Layer is the training contract shared by every block in this package.
//
// Forward consumes a rows×in batch and produces a rows×out batch, caching
// whatever Backward needs. Backward consumes ∂L/∂output, accumulates
// parameter gradients, and returns ∂L/∂input. Layers are not safe for
// concurrent use.
type Layer interface {
	Forward(x *mat.Dense) (*mat.Dense, error)
	Backward(grad *mat.Dense) (*mat.Dense, error)
	Params() []Param
	ZeroGrad()
}
