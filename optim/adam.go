package optim

import (
	"math"

	"github.com/katalvlaran/multivae/nn"
)

// Adam implements the Adam update with bias correction and decoupled
// weight decay (AdamW when WeightDecay > 0):
//
//	mₜ = β₁·mₜ₋₁ + (1−β₁)·g
//	vₜ = β₂·vₜ₋₁ + (1−β₂)·g²
//	w  = w − lr·( m̂ₜ / (√v̂ₜ + ε) + wd·w )
//
// Per-parameter moment state is keyed by Param.Name.
type Adam struct {
	lr    float64
	beta1 float64
	beta2 float64
	eps   float64
	wd    float64

	t int // global step counter
	m map[string][]float64
	v map[string][]float64
}

// AdamOption tweaks the defaults of NewAdam.
type AdamOption func(*Adam)

// WithBetas overrides the moment decay rates (defaults 0.9 and 0.999).
func WithBetas(beta1, beta2 float64) AdamOption {
	return func(a *Adam) { a.beta1, a.beta2 = beta1, beta2 }
}

// WithEpsilon overrides the denominator floor (default 1e-8).
func WithEpsilon(eps float64) AdamOption {
	return func(a *Adam) { a.eps = eps }
}

// WithWeightDecay enables decoupled weight decay (default 0).
func WithWeightDecay(wd float64) AdamOption {
	return func(a *Adam) { a.wd = wd }
}

// NewAdam validates hyperparameters and returns the optimizer.
//
// Errors: ErrBadLearningRate, ErrBadBeta, ErrBadEpsilon, ErrBadWeightDecay.
func NewAdam(lr float64, opts ...AdamOption) (*Adam, error) {
	if lr <= 0 || math.IsNaN(lr) || math.IsInf(lr, 0) {
		return nil, ErrBadLearningRate
	}
	a := &Adam{
		lr:    lr,
		beta1: 0.9,
		beta2: 0.999,
		eps:   1e-8,
		m:     make(map[string][]float64),
		v:     make(map[string][]float64),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.beta1 <= 0 || a.beta1 >= 1 || a.beta2 <= 0 || a.beta2 >= 1 {
		return nil, ErrBadBeta
	}
	if a.eps <= 0 {
		return nil, ErrBadEpsilon
	}
	if a.wd < 0 {
		return nil, ErrBadWeightDecay
	}
	return a, nil
}

// Step applies one bias-corrected update to every parameter.
// Complexity: O(total parameter count).
func (a *Adam) Step(params []nn.Param) error {
	if err := checkParams(params); err != nil {
		return err
	}
	a.t++
	c1 := 1 - math.Pow(a.beta1, float64(a.t))
	c2 := 1 - math.Pow(a.beta2, float64(a.t))

	for _, p := range params {
		wd := p.W.RawMatrix().Data
		gd := p.G.RawMatrix().Data

		m := a.m[p.Name]
		v := a.v[p.Name]
		if m == nil {
			m = make([]float64, len(wd))
			v = make([]float64, len(wd))
			a.m[p.Name] = m
			a.v[p.Name] = v
		} else if len(m) != len(wd) {
			return ErrShapeDrift
		}

		for i := range wd {
			g := gd[i]
			m[i] = a.beta1*m[i] + (1-a.beta1)*g
			v[i] = a.beta2*v[i] + (1-a.beta2)*g*g
			mh := m[i] / c1
			vh := v[i] / c2
			wd[i] -= a.lr * (mh/(math.Sqrt(vh)+a.eps) + a.wd*wd[i])
		}
	}
	return nil
}

// compile-time interface conformance
var _ Optimizer = (*Adam)(nil)
