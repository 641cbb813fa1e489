// Package dist: sentinel errors, shared constants, and the deterministic
// RNG policy used by all sampling helpers.
package dist

import (
	"errors"
	"math"
	"math/rand"
)

// Sentinel errors for distribution construction and evaluation.
var (
	// ErrShapeMismatch indicates two operands (parameters, or parameters vs.
	// evaluation points) do not share the same rows×cols shape.
	ErrShapeMismatch = errors.New("dist: shape mismatch")

	// ErrBadVariance indicates a non-positive or non-finite variance entry.
	ErrBadVariance = errors.New("dist: variance must be positive and finite")

	// ErrBadScale indicates a non-positive or non-finite scale entry.
	ErrBadScale = errors.New("dist: scale must be positive and finite")

	// ErrNilParam indicates a nil parameter matrix was supplied.
	ErrNilParam = errors.New("dist: nil parameter matrix")
)

// log2Pi is log(2π), the constant term of the Gaussian log-density.
const log2Pi = 1.837877066409345483560659472811

// Variational-dropout KL approximation constants (Molchanov et al., 2017).
const (
	sparseK1 = 0.63576
	sparseK2 = 1.87320
	sparseK3 = 1.48695
)

// sparseMuFloor keeps log α = log σ² − log μ² finite when μ approaches zero.
const sparseMuFloor = 1e-8

// defaultRNGSeed is the fixed “zero” seed used when callers pass a nil RNG.
// The value is arbitrary but stable to keep reproducible defaults.
const defaultRNGSeed int64 = 1

// ensureRNG returns rng unchanged when non-nil, otherwise a deterministic
// default stream. No time-based seeding anywhere.
func ensureRNG(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(defaultRNGSeed))
}

// sigmoid is the numerically stable logistic function.
func sigmoid(x float64) float64 {
	if x >= 0 {
		return 1.0 / (1.0 + math.Exp(-x))
	}
	e := math.Exp(x)
	return e / (1.0 + e)
}

// softplus computes log(1+eˣ) without overflow for large |x|.
func softplus(x float64) float64 {
	if x > 30 {
		return x
	}
	return math.Log1p(math.Exp(x))
}
