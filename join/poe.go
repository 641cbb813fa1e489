package join

import (
	"gonum.org/v1/gonum/mat"
)

// ProductOfExperts fuses per-view Gaussians by multiplying their densities.
//
// Forward (with the prior expert enabled):
//
//	Tᵢ = 1/σᵢ²                     (per-view precision)
//	σ² = 1 / (T₀ + Σ Tᵢ)           (T₀ = 1 for the unit prior, 0 otherwise)
//	μ  = σ² · Σ μᵢ·Tᵢ              (the prior's μ₀ = 0 contributes nothing)
//
// Backward: given gMu = ∂L/∂μ and gVar = ∂L/∂σ², with S = Σ μⱼ·Tⱼ,
//
//	∂L/∂μᵢ  = gMu · σ² · Tᵢ
//	∂L/∂Tᵢ  = gMu · σ² · μᵢ − (gVar + gMu·S) · σ⁴
//	∂L/∂σᵢ² = −∂L/∂Tᵢ · Tᵢ²
//
// Use NewProductOfExperts / WithoutPriorExpert to construct.
type ProductOfExperts struct {
	prior bool

	// cache from the last Join, consumed by Backward
	mus  []*mat.Dense
	vars []*mat.Dense
	va   *mat.Dense // joint σ²
	s    *mat.Dense // Σ μⱼ·Tⱼ
}

// PoEOption configures a ProductOfExperts.
type PoEOption func(*ProductOfExperts)

// WithoutPriorExpert drops the implicit unit prior N(0, I) from the product.
// With a single view and no prior, PoE degenerates to the identity.
func WithoutPriorExpert() PoEOption {
	return func(p *ProductOfExperts) { p.prior = false }
}

// NewProductOfExperts returns a PoE joiner with the unit prior expert
// enabled, matching the standard multi-view VAE formulation.
func NewProductOfExperts(opts ...PoEOption) *ProductOfExperts {
	p := &ProductOfExperts{prior: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Join computes the precision-weighted joint posterior.
// Complexity: O(views·rows·cols) time and memory.
func (p *ProductOfExperts) Join(mus, vars []*mat.Dense) (mu, va *mat.Dense, err error) {
	r, c, err := validateViews(mus, vars)
	if err != nil {
		return nil, nil, err
	}

	tsum := mat.NewDense(r, c, nil)
	s := mat.NewDense(r, c, nil)
	td := tsum.RawMatrix().Data
	sd := s.RawMatrix().Data
	if p.prior {
		for i := range td {
			td[i] = 1 // unit prior precision; prior mean 0 adds nothing to s
		}
	}
	for v := range mus {
		md := mus[v].RawMatrix().Data
		vd := vars[v].RawMatrix().Data
		for i := range td {
			t := 1 / vd[i]
			td[i] += t
			sd[i] += md[i] * t
		}
	}

	mu = mat.NewDense(r, c, nil)
	va = mat.NewDense(r, c, nil)
	mud := mu.RawMatrix().Data
	vad := va.RawMatrix().Data
	for i := range td {
		vad[i] = 1 / td[i]
		mud[i] = vad[i] * sd[i]
	}

	p.mus = mus
	p.vars = vars
	p.va = va
	p.s = s
	return mu, va, nil
}

// Backward maps joint-posterior gradients back to each expert.
// Complexity: O(views·rows·cols) time and memory.
func (p *ProductOfExperts) Backward(gradMu, gradVar *mat.Dense) (gmus, gvars []*mat.Dense, err error) {
	if p.va == nil {
		return nil, nil, ErrJoinNotComputed
	}
	r, c := p.va.Dims()
	if err = checkGradShape(gradMu, gradVar, r, c); err != nil {
		return nil, nil, err
	}

	gm := gradMu.RawMatrix().Data
	gv := gradVar.RawMatrix().Data
	vad := p.va.RawMatrix().Data
	sd := p.s.RawMatrix().Data

	nViews := len(p.mus)
	gmus = make([]*mat.Dense, nViews)
	gvars = make([]*mat.Dense, nViews)
	for v := 0; v < nViews; v++ {
		gmu := mat.NewDense(r, c, nil)
		gva := mat.NewDense(r, c, nil)
		gmd := gmu.RawMatrix().Data
		gvd := gva.RawMatrix().Data
		md := p.mus[v].RawMatrix().Data
		vd := p.vars[v].RawMatrix().Data
		for i := range gmd {
			t := 1 / vd[i]
			va2 := vad[i] * vad[i]
			// total gradient on the joint σ², including the μ = σ²·S path
			gvaEff := gv[i] + gm[i]*sd[i]
			gT := gm[i]*vad[i]*md[i] - gvaEff*va2
			gmd[i] = gm[i] * vad[i] * t
			gvd[i] = -gT * t * t
		}
		gmus[v] = gmu
		gvars[v] = gva
	}
	return gmus, gvars, nil
}

// checkGradShape validates Backward inputs against the cached output shape.
func checkGradShape(gradMu, gradVar *mat.Dense, r, c int) error {
	if gradMu == nil || gradVar == nil {
		return ErrNilInput
	}
	mr, mc := gradMu.Dims()
	vr, vc := gradVar.Dims()
	if mr != r || mc != c || vr != r || vc != c {
		return ErrGradShapeMismatch
	}
	return nil
}
