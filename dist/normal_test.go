package dist_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/multivae/dist"
)

// TestNewNormal_Validation verifies nil, ragged, and non-positive-variance
// parameters surface the right sentinels.
func TestNewNormal_Validation(t *testing.T) {
	mu := mat.NewDense(2, 3, nil)
	va := mat.NewDense(2, 3, []float64{1, 1, 1, 1, 1, 1})

	_, err := dist.NewNormal(nil, va)
	assert.ErrorIs(t, err, dist.ErrNilParam, "nil mu must error")

	_, err = dist.NewNormal(mu, mat.NewDense(3, 2, []float64{1, 1, 1, 1, 1, 1}))
	assert.ErrorIs(t, err, dist.ErrShapeMismatch, "ragged parameters must error")

	bad := mat.NewDense(2, 3, []float64{1, 1, 1, 1, 0, 1})
	_, err = dist.NewNormal(mu, bad)
	assert.ErrorIs(t, err, dist.ErrBadVariance, "zero variance must error")

	_, err = dist.NewNormal(mu, va)
	assert.NoError(t, err, "valid parameters must construct")
}

// TestNormal_LogProb checks the standard-Normal density at zero:
// log p(0) = −½·log(2π).
func TestNormal_LogProb(t *testing.T) {
	mu := mat.NewDense(1, 2, []float64{0, 0})
	va := mat.NewDense(1, 2, []float64{1, 1})
	n, err := dist.NewNormal(mu, va)
	require.NoError(t, err)

	lp, err := n.LogProb(mat.NewDense(1, 2, []float64{0, 0}))
	require.NoError(t, err)
	want := -0.5 * math.Log(2*math.Pi)
	assert.InDelta(t, want, lp.At(0, 0), 1e-12, "standard Normal at 0")
	assert.InDelta(t, want, lp.At(0, 1), 1e-12)

	_, err = n.LogProb(mat.NewDense(2, 2, nil))
	assert.ErrorIs(t, err, dist.ErrShapeMismatch, "shape mismatch must error")
}

// TestNormal_KLStandardPrior verifies KL(N(0,1) ‖ N(0,1)) == 0 and the
// closed form for a shifted posterior.
func TestNormal_KLStandardPrior(t *testing.T) {
	mu := mat.NewDense(1, 1, []float64{0})
	va := mat.NewDense(1, 1, []float64{1})
	n, err := dist.NewNormal(mu, va)
	require.NoError(t, err)

	kl, err := n.KL(nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, kl.At(0, 0), 1e-12, "KL of the prior against itself is zero")

	// KL(N(1,1) ‖ N(0,1)) = ½·μ² = 0.5
	n2, err := dist.NewNormal(mat.NewDense(1, 1, []float64{1}), va)
	require.NoError(t, err)
	kl2, err := n2.KL(nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, kl2.At(0, 0), 1e-12, "shifted mean costs ½·μ²")
}

// TestNormal_KLExplicitPrior checks the broadcast single-row prior against
// the nil shorthand and rejects incompatible shapes.
func TestNormal_KLExplicitPrior(t *testing.T) {
	mu := mat.NewDense(2, 2, []float64{0.3, -0.7, 1.2, 0.0})
	va := mat.NewDense(2, 2, []float64{0.5, 2.0, 1.0, 0.25})
	n, err := dist.NewNormal(mu, va)
	require.NoError(t, err)

	std, err := dist.NewNormal(mat.NewDense(1, 2, []float64{0, 0}), mat.NewDense(1, 2, []float64{1, 1}))
	require.NoError(t, err)

	klNil, err := n.KL(nil)
	require.NoError(t, err)
	klStd, err := n.KL(std)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			assert.InDelta(t, klNil.At(i, j), klStd.At(i, j), 1e-12, "broadcast unit prior must match nil shorthand")
		}
	}

	badPrior, err := dist.NewNormal(mat.NewDense(1, 3, nil), mat.NewDense(1, 3, []float64{1, 1, 1}))
	require.NoError(t, err)
	_, err = n.KL(badPrior)
	assert.ErrorIs(t, err, dist.ErrShapeMismatch, "prior with wrong dims must error")
}

// TestNormal_RsampleDeterministic verifies the seed policy: equal seeds give
// identical draws, and z = μ + σ·ε holds exactly for the returned noise.
func TestNormal_RsampleDeterministic(t *testing.T) {
	mu := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	va := mat.NewDense(2, 2, []float64{0.25, 1, 4, 9})
	n, err := dist.NewNormal(mu, va)
	require.NoError(t, err)

	z1, e1 := n.Rsample(rand.New(rand.NewSource(7)))
	z2, e2 := n.Rsample(rand.New(rand.NewSource(7)))
	assert.True(t, mat.Equal(z1, z2), "same seed must reproduce the draw")
	assert.True(t, mat.Equal(e1, e2), "same seed must reproduce the noise")

	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			want := mu.At(i, j) + math.Sqrt(va.At(i, j))*e1.At(i, j)
			assert.InDelta(t, want, z1.At(i, j), 1e-12, "pathwise identity z = μ + σ·ε")
		}
	}
}

// TestNormal_SparseKL verifies the approximation vanishes as α explodes
// (a pruned dimension is free) and is large when α is tiny (a kept,
// near-deterministic dimension pays for departing the log-uniform prior).
func TestNormal_SparseKL(t *testing.T) {
	// μ = 10, σ² = 1e-6 ⇒ α ≈ 1e-8: dimension firmly kept.
	kept, err := dist.NewNormal(mat.NewDense(1, 1, []float64{10}), mat.NewDense(1, 1, []float64{1e-6}))
	require.NoError(t, err)
	assert.Less(t, kept.DropoutProbability().At(0, 0), 0.01, "tiny α ⇒ near-zero dropout probability")

	// μ = 1e-3, σ² = 10 ⇒ α huge: dimension dropped.
	dropped, err := dist.NewNormal(mat.NewDense(1, 1, []float64{1e-3}), mat.NewDense(1, 1, []float64{10}))
	require.NoError(t, err)
	assert.Greater(t, dropped.DropoutProbability().At(0, 0), 0.99, "huge α ⇒ dropout probability near one")
	assert.InDelta(t, 0.0, dropped.SparseKL().At(0, 0), 1e-2, "huge α ⇒ near-zero sparse KL")
	assert.Greater(t, kept.SparseKL().At(0, 0), dropped.SparseKL().At(0, 0), "kept dimension pays more KL than a pruned one")
}

// TestNormal_MeanAndStdDev confirms accessors copy rather than alias.
func TestNormal_MeanAndStdDev(t *testing.T) {
	mu := mat.NewDense(1, 2, []float64{1, 2})
	va := mat.NewDense(1, 2, []float64{4, 9})
	n, err := dist.NewNormal(mu, va)
	require.NoError(t, err)

	m := n.Mean()
	m.Set(0, 0, 99)
	assert.Equal(t, 1.0, n.Mu.At(0, 0), "Mean must return a copy")

	sd := n.StdDev()
	assert.InDelta(t, 2.0, sd.At(0, 0), 1e-12)
	assert.InDelta(t, 3.0, sd.At(0, 1), 1e-12)
}
