package join_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/multivae/join"
)

// TestPoE_ClosedForm verifies the precision-weighted fusion against the
// closed form σ² = 1/(1+Σ1/σᵢ²), μ = σ²·Σμᵢ/σᵢ².
func TestPoE_ClosedForm(t *testing.T) {
	mus := []*mat.Dense{
		mat.NewDense(1, 1, []float64{2}),
		mat.NewDense(1, 1, []float64{-1}),
	}
	vars := []*mat.Dense{
		mat.NewDense(1, 1, []float64{0.5}), // precision 2
		mat.NewDense(1, 1, []float64{1.0}), // precision 1
	}

	p := join.NewProductOfExperts()
	mu, va, err := p.Join(mus, vars)
	require.NoError(t, err)

	// total precision = 1 (prior) + 2 + 1 = 4
	assert.InDelta(t, 0.25, va.At(0, 0), 1e-12, "joint variance is inverse total precision")
	// μ = ¼·(2·2 + (−1)·1) = 0.75
	assert.InDelta(t, 0.75, mu.At(0, 0), 1e-12, "joint mean is precision-weighted")
}

// TestPoE_WithoutPrior verifies the single-view identity when the prior
// expert is disabled.
func TestPoE_WithoutPrior(t *testing.T) {
	mus := []*mat.Dense{mat.NewDense(1, 2, []float64{3, -4})}
	vars := []*mat.Dense{mat.NewDense(1, 2, []float64{0.7, 2.5})}

	p := join.NewProductOfExperts(join.WithoutPriorExpert())
	mu, va, err := p.Join(mus, vars)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(mus[0], mu, 1e-12), "single expert without prior passes μ through")
	assert.True(t, mat.EqualApprox(vars[0], va, 1e-12), "single expert without prior passes σ² through")
}

// TestMean_ClosedForm verifies the arithmetic average of parameters.
func TestMean_ClosedForm(t *testing.T) {
	mus := []*mat.Dense{
		mat.NewDense(1, 1, []float64{2}),
		mat.NewDense(1, 1, []float64{4}),
	}
	vars := []*mat.Dense{
		mat.NewDense(1, 1, []float64{1}),
		mat.NewDense(1, 1, []float64{3}),
	}

	m := join.NewMeanOfExperts()
	mu, va, err := m.Join(mus, vars)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, mu.At(0, 0), 1e-12)
	assert.InDelta(t, 2.0, va.At(0, 0), 1e-12)
}

// TestJoin_Validation exercises the shared precondition sentinels.
func TestJoin_Validation(t *testing.T) {
	p := join.NewProductOfExperts()

	_, _, err := p.Join(nil, nil)
	assert.ErrorIs(t, err, join.ErrNoViews, "zero views must error")

	_, _, err = p.Join([]*mat.Dense{mat.NewDense(1, 1, nil)}, nil)
	assert.ErrorIs(t, err, join.ErrViewShapeMismatch, "mus/vars length mismatch must error")

	_, _, err = p.Join(
		[]*mat.Dense{mat.NewDense(1, 2, nil), mat.NewDense(2, 1, nil)},
		[]*mat.Dense{mat.NewDense(1, 2, []float64{1, 1}), mat.NewDense(2, 1, []float64{1, 1})},
	)
	assert.ErrorIs(t, err, join.ErrViewShapeMismatch, "ragged views must error")

	_, _, err = p.Backward(mat.NewDense(1, 1, nil), mat.NewDense(1, 1, nil))
	assert.ErrorIs(t, err, join.ErrJoinNotComputed, "Backward before Join must error")
}

// gradCheck compares a Joiner's analytic Backward against central finite
// differences of the scalar loss L = Σ wMu∘μ + Σ wVar∘σ².
func gradCheck(t *testing.T, mk func() join.Joiner, views, rows, cols int, seed int64) {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))

	mus := make([]*mat.Dense, views)
	vars := make([]*mat.Dense, views)
	for v := 0; v < views; v++ {
		mus[v] = mat.NewDense(rows, cols, nil)
		vars[v] = mat.NewDense(rows, cols, nil)
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				mus[v].Set(i, j, rng.NormFloat64())
				vars[v].Set(i, j, 0.3+rng.Float64())
			}
		}
	}
	wMu := mat.NewDense(rows, cols, nil)
	wVar := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			wMu.Set(i, j, rng.NormFloat64())
			wVar.Set(i, j, rng.NormFloat64())
		}
	}

	loss := func(j join.Joiner) float64 {
		mu, va, err := j.Join(mus, vars)
		require.NoError(t, err)
		var l float64
		for i := 0; i < rows; i++ {
			for k := 0; k < cols; k++ {
				l += wMu.At(i, k)*mu.At(i, k) + wVar.At(i, k)*va.At(i, k)
			}
		}
		return l
	}

	j := mk()
	loss(j) // populate the cache
	gmus, gvars, err := j.Backward(wMu, wVar)
	require.NoError(t, err)

	const h = 1e-6
	probe := mk()
	for v := 0; v < views; v++ {
		for i := 0; i < rows; i++ {
			for k := 0; k < cols; k++ {
				// μ perturbation
				orig := mus[v].At(i, k)
				mus[v].Set(i, k, orig+h)
				up := loss(probe)
				mus[v].Set(i, k, orig-h)
				down := loss(probe)
				mus[v].Set(i, k, orig)
				assert.InDelta(t, (up-down)/(2*h), gmus[v].At(i, k), 1e-4,
					"∂L/∂μ view=%d (%d,%d)", v, i, k)

				// σ² perturbation
				orig = vars[v].At(i, k)
				vars[v].Set(i, k, orig+h)
				up = loss(probe)
				vars[v].Set(i, k, orig-h)
				down = loss(probe)
				vars[v].Set(i, k, orig)
				assert.InDelta(t, (up-down)/(2*h), gvars[v].At(i, k), 1e-4,
					"∂L/∂σ² view=%d (%d,%d)", v, i, k)
			}
		}
	}
}

// TestPoE_GradientCheck validates the PoE backward pass numerically.
func TestPoE_GradientCheck(t *testing.T) {
	gradCheck(t, func() join.Joiner { return join.NewProductOfExperts() }, 3, 2, 2, 41)
}

// TestPoE_GradientCheckNoPrior validates the prior-free PoE backward pass.
func TestPoE_GradientCheckNoPrior(t *testing.T) {
	gradCheck(t, func() join.Joiner { return join.NewProductOfExperts(join.WithoutPriorExpert()) }, 2, 2, 3, 42)
}

// TestMean_GradientCheck validates the mean-joiner backward pass numerically.
func TestMean_GradientCheck(t *testing.T) {
	gradCheck(t, func() join.Joiner { return join.NewMeanOfExperts() }, 3, 2, 2, 43)
}
