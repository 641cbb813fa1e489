package join

import (
	"gonum.org/v1/gonum/mat"
)

// MeanOfExperts fuses per-view Gaussians by averaging their parameters:
//
//	μ = (1/V)·Σ μᵢ,  σ² = (1/V)·Σ σᵢ²
//
// Simpler and cheaper than ProductOfExperts, at the cost of ignoring each
// view's confidence. Backward distributes gradients uniformly: every view
// receives 1/V of the joint gradient.
type MeanOfExperts struct {
	nViews int
	rows   int
	cols   int
}

// NewMeanOfExperts returns a mean joiner.
func NewMeanOfExperts() *MeanOfExperts {
	return &MeanOfExperts{}
}

// Join averages the per-view parameters.
// Complexity: O(views·rows·cols) time, O(rows·cols) memory.
func (m *MeanOfExperts) Join(mus, vars []*mat.Dense) (mu, va *mat.Dense, err error) {
	r, c, err := validateViews(mus, vars)
	if err != nil {
		return nil, nil, err
	}

	mu = mat.NewDense(r, c, nil)
	va = mat.NewDense(r, c, nil)
	for v := range mus {
		mu.Add(mu, mus[v])
		va.Add(va, vars[v])
	}
	inv := 1 / float64(len(mus))
	mu.Scale(inv, mu)
	va.Scale(inv, va)

	m.nViews = len(mus)
	m.rows, m.cols = r, c
	return mu, va, nil
}

// Backward hands each view an equal 1/V share of the joint gradients.
func (m *MeanOfExperts) Backward(gradMu, gradVar *mat.Dense) (gmus, gvars []*mat.Dense, err error) {
	if m.nViews == 0 {
		return nil, nil, ErrJoinNotComputed
	}
	if err = checkGradShape(gradMu, gradVar, m.rows, m.cols); err != nil {
		return nil, nil, err
	}

	inv := 1 / float64(m.nViews)
	gmus = make([]*mat.Dense, m.nViews)
	gvars = make([]*mat.Dense, m.nViews)
	for v := 0; v < m.nViews; v++ {
		gmu := mat.NewDense(m.rows, m.cols, nil)
		gva := mat.NewDense(m.rows, m.cols, nil)
		gmu.Scale(inv, gradMu)
		gva.Scale(inv, gradVar)
		gmus[v] = gmu
		gvars[v] = gva
	}
	return gmus, gvars, nil
}
