package nn_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/multivae/nn"
)

// randDense fills a rows×cols matrix from a seeded generator.
func randDense(rng *rand.Rand, rows, cols int) *mat.Dense {
	m := mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			m.Set(i, j, rng.NormFloat64())
		}
	}
	return m
}

// TestLinear_ForwardShape verifies y = x·W + b dimensions and bias broadcast.
func TestLinear_ForwardShape(t *testing.T) {
	l, err := nn.NewLinear("fc", 3, 2, nn.NormalInit{Std: 0.1, Seed: 5})
	require.NoError(t, err)

	y, err := l.Forward(mat.NewDense(4, 3, nil))
	require.NoError(t, err)
	r, c := y.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 2, c)

	// zero input ⇒ output equals the (zero-initialized) bias
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.Equal(t, 0.0, y.At(i, j), "zero input through zero bias")
		}
	}

	_, err = l.Forward(mat.NewDense(4, 5, nil))
	assert.ErrorIs(t, err, nn.ErrShapeMismatch, "wrong input width must error")
}

// TestLinear_BackwardContract verifies ErrNoForward and gradient shapes.
func TestLinear_BackwardContract(t *testing.T) {
	l, err := nn.NewLinear("fc", 3, 2, nil)
	require.NoError(t, err)

	_, err = l.Backward(mat.NewDense(1, 2, nil))
	assert.ErrorIs(t, err, nn.ErrNoForward, "Backward before Forward must error")

	_, err = l.Forward(mat.NewDense(4, 3, nil))
	require.NoError(t, err)
	_, err = l.Backward(mat.NewDense(4, 3, nil))
	assert.ErrorIs(t, err, nn.ErrShapeMismatch, "gradient width must match the output")
}

// TestMLP_GradientCheck validates parameter and input gradients of a small
// tanh MLP against central finite differences of L = Σ w∘MLP(x).
func TestMLP_GradientCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	m, err := nn.NewMLP("net", []int{3, 4, 2},
		nn.WithHiddenActivation(nn.ActTanh),
		nn.WithInitializer(nn.NormalInit{Std: 0.5, Seed: 9}),
	)
	require.NoError(t, err)

	x := randDense(rng, 5, 3)
	w := randDense(rng, 5, 2)

	loss := func() float64 {
		y, ferr := m.Forward(x)
		require.NoError(t, ferr)
		var l float64
		yr, yc := y.Dims()
		for i := 0; i < yr; i++ {
			for j := 0; j < yc; j++ {
				l += w.At(i, j) * y.At(i, j)
			}
		}
		return l
	}

	m.ZeroGrad()
	loss()
	gx, err := m.Backward(w)
	require.NoError(t, err)

	const h = 1e-6

	// input gradients
	for i := 0; i < 5; i++ {
		for j := 0; j < 3; j++ {
			orig := x.At(i, j)
			x.Set(i, j, orig+h)
			up := loss()
			x.Set(i, j, orig-h)
			down := loss()
			x.Set(i, j, orig)
			assert.InDelta(t, (up-down)/(2*h), gx.At(i, j), 1e-4, "∂L/∂x (%d,%d)", i, j)
		}
	}

	// parameter gradients
	for _, p := range m.Params() {
		pr, pc := p.W.Dims()
		for i := 0; i < pr; i++ {
			for j := 0; j < pc; j++ {
				orig := p.W.At(i, j)
				p.W.Set(i, j, orig+h)
				up := loss()
				p.W.Set(i, j, orig-h)
				down := loss()
				p.W.Set(i, j, orig)
				assert.InDelta(t, (up-down)/(2*h), p.G.At(i, j), 1e-4, "∂L/∂%s (%d,%d)", p.Name, i, j)
			}
		}
	}
}

// TestGaussianHead_GradientCheck validates both head gradients and the
// merged trunk gradient numerically.
func TestGaussianHead_GradientCheck(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	g, err := nn.NewGaussianHead("enc", 3, []int{4}, 2,
		nn.WithInitializer(nn.NormalInit{Std: 0.5, Seed: 13}),
	)
	require.NoError(t, err)

	x := randDense(rng, 4, 3)
	wMu := randDense(rng, 4, 2)
	wLv := randDense(rng, 4, 2)

	loss := func() float64 {
		mu, lv, ferr := g.Forward(x)
		require.NoError(t, ferr)
		var l float64
		for i := 0; i < 4; i++ {
			for j := 0; j < 2; j++ {
				l += wMu.At(i, j)*mu.At(i, j) + wLv.At(i, j)*lv.At(i, j)
			}
		}
		return l
	}

	g.ZeroGrad()
	loss()
	gx, err := g.Backward(wMu, wLv)
	require.NoError(t, err)

	const h = 1e-6
	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			orig := x.At(i, j)
			x.Set(i, j, orig+h)
			up := loss()
			x.Set(i, j, orig-h)
			down := loss()
			x.Set(i, j, orig)
			assert.InDelta(t, (up-down)/(2*h), gx.At(i, j), 1e-4, "∂L/∂x (%d,%d)", i, j)
		}
	}
	for _, p := range g.Params() {
		pr, pc := p.W.Dims()
		for i := 0; i < pr; i++ {
			for j := 0; j < pc; j++ {
				orig := p.W.At(i, j)
				p.W.Set(i, j, orig+h)
				up := loss()
				p.W.Set(i, j, orig-h)
				down := loss()
				p.W.Set(i, j, orig)
				assert.InDelta(t, (up-down)/(2*h), p.G.At(i, j), 1e-4, "∂L/∂%s (%d,%d)", p.Name, i, j)
			}
		}
	}
}

// TestMLP_ParamNames verifies the stable naming scheme optimizers key on.
func TestMLP_ParamNames(t *testing.T) {
	m, err := nn.NewMLP("dec1", []int{2, 3, 2})
	require.NoError(t, err)

	var names []string
	for _, p := range m.Params() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"dec1.0.w", "dec1.0.b", "dec1.1.w", "dec1.1.b"}, names)
}

// TestActivations spot-checks each nonlinearity's forward values.
func TestActivations(t *testing.T) {
	x := mat.NewDense(1, 3, []float64{-2, 0, 2})

	relu := nn.NewActivation(nn.ActReLU)
	y, err := relu.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 2}, y.RawMatrix().Data)

	sig := nn.NewActivation(nn.ActSigmoid)
	y, err = sig.Forward(mat.NewDense(1, 1, []float64{0}))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, y.At(0, 0), 1e-12)

	tanh := nn.NewActivation(nn.ActTanh)
	y, err = tanh.Forward(mat.NewDense(1, 1, []float64{0}))
	require.NoError(t, err)
	assert.Equal(t, 0.0, y.At(0, 0))
}

// TestInitializers_Deterministic verifies equal seeds reproduce, distinct
// seeds differ, and seed 0 selects the fixed default stream.
func TestInitializers_Deterministic(t *testing.T) {
	w1 := mat.NewDense(4, 4, nil)
	w2 := mat.NewDense(4, 4, nil)
	nn.XavierUniform{Seed: 7}.Initialize(w1)
	nn.XavierUniform{Seed: 7}.Initialize(w2)
	assert.True(t, mat.Equal(w1, w2), "same seed must reproduce weights")

	w3 := mat.NewDense(4, 4, nil)
	nn.XavierUniform{Seed: 8}.Initialize(w3)
	assert.False(t, mat.Equal(w1, w3), "different seeds must differ")

	w4 := mat.NewDense(4, 4, nil)
	w5 := mat.NewDense(4, 4, nil)
	nn.HeNormal{}.Initialize(w4)
	nn.HeNormal{Seed: 1}.Initialize(w5)
	assert.True(t, mat.Equal(w4, w5), "seed 0 must equal the default seed")
}

// TestNewMLP_Validation rejects degenerate width lists.
func TestNewMLP_Validation(t *testing.T) {
	_, err := nn.NewMLP("m", []int{3})
	assert.ErrorIs(t, err, nn.ErrBadDims, "a single width is not a network")

	_, err = nn.NewMLP("m", []int{3, 0})
	assert.ErrorIs(t, err, nn.ErrBadDims, "zero width must error")
}
