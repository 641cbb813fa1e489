package optim_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/multivae/nn"
	"github.com/katalvlaran/multivae/optim"
)

// param builds a named 1×n parameter with the given weight and gradient.
func param(name string, w, g []float64) nn.Param {
	return nn.Param{
		Name: name,
		W:    mat.NewDense(1, len(w), w),
		G:    mat.NewDense(1, len(g), g),
	}
}

// TestNewSGD_Validation rejects bad hyperparameters at construction.
func TestNewSGD_Validation(t *testing.T) {
	_, err := optim.NewSGD(0, 0)
	assert.ErrorIs(t, err, optim.ErrBadLearningRate)

	_, err = optim.NewSGD(0.1, 1.0)
	assert.ErrorIs(t, err, optim.ErrBadMomentum)

	_, err = optim.NewSGD(0.1, 0.9)
	assert.NoError(t, err)
}

// TestSGD_PlainStep verifies w ← w − lr·g without momentum.
func TestSGD_PlainStep(t *testing.T) {
	s, err := optim.NewSGD(0.5, 0)
	require.NoError(t, err)

	p := param("w", []float64{1, 2}, []float64{2, -4})
	require.NoError(t, s.Step([]nn.Param{p}))
	assert.InDelta(t, 0.0, p.W.At(0, 0), 1e-12, "1 − 0.5·2")
	assert.InDelta(t, 4.0, p.W.At(0, 1), 1e-12, "2 − 0.5·(−4)")
}

// TestSGD_Momentum verifies the velocity accumulates across steps.
func TestSGD_Momentum(t *testing.T) {
	s, err := optim.NewSGD(1.0, 0.5)
	require.NoError(t, err)

	p := param("w", []float64{0}, []float64{1})
	require.NoError(t, s.Step([]nn.Param{p})) // v=1,   w=−1
	require.NoError(t, s.Step([]nn.Param{p})) // v=1.5, w=−2.5
	assert.InDelta(t, -2.5, p.W.At(0, 0), 1e-12)
}

// TestNewAdam_Validation rejects bad hyperparameters at construction.
func TestNewAdam_Validation(t *testing.T) {
	_, err := optim.NewAdam(-1)
	assert.ErrorIs(t, err, optim.ErrBadLearningRate)

	_, err = optim.NewAdam(0.001, optim.WithBetas(1.0, 0.999))
	assert.ErrorIs(t, err, optim.ErrBadBeta)

	_, err = optim.NewAdam(0.001, optim.WithEpsilon(0))
	assert.ErrorIs(t, err, optim.ErrBadEpsilon)

	_, err = optim.NewAdam(0.001, optim.WithWeightDecay(-0.1))
	assert.ErrorIs(t, err, optim.ErrBadWeightDecay)
}

// TestAdam_FirstStep verifies the bias-corrected first update moves by
// exactly lr·sign(g) (up to epsilon), the well-known Adam property.
func TestAdam_FirstStep(t *testing.T) {
	a, err := optim.NewAdam(0.1)
	require.NoError(t, err)

	p := param("w", []float64{1, 1}, []float64{5, -0.001})
	require.NoError(t, a.Step([]nn.Param{p}))
	assert.InDelta(t, 0.9, p.W.At(0, 0), 1e-6, "first step ≈ −lr for positive gradient")
	assert.InDelta(t, 1.1, p.W.At(0, 1), 1e-4, "first step ≈ +lr for negative gradient")
}

// TestAdam_ConvergesOnQuadratic drives w toward the minimum of ½·(w−3)².
func TestAdam_ConvergesOnQuadratic(t *testing.T) {
	a, err := optim.NewAdam(0.1)
	require.NoError(t, err)

	p := param("w", []float64{0}, []float64{0})
	for i := 0; i < 500; i++ {
		p.G.Set(0, 0, p.W.At(0, 0)-3) // ∇ ½(w−3)²
		require.NoError(t, a.Step([]nn.Param{p}))
	}
	assert.InDelta(t, 3.0, p.W.At(0, 0), 0.05, "Adam must reach the quadratic minimum")
}

// TestStep_ShapeDrift verifies a renamed-shape parameter is rejected.
func TestStep_ShapeDrift(t *testing.T) {
	a, err := optim.NewAdam(0.01)
	require.NoError(t, err)

	require.NoError(t, a.Step([]nn.Param{param("w", []float64{1, 2}, []float64{1, 1})}))
	err = a.Step([]nn.Param{param("w", []float64{1}, []float64{1})})
	assert.ErrorIs(t, err, optim.ErrShapeDrift, "shrunk parameter must be rejected")
}

// TestStep_NilParam verifies nil matrices are rejected.
func TestStep_NilParam(t *testing.T) {
	s, err := optim.NewSGD(0.1, 0)
	require.NoError(t, err)
	err = s.Step([]nn.Param{{Name: "w"}})
	assert.ErrorIs(t, err, optim.ErrNilParam)
}
