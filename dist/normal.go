package dist

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Normal is a batch of independent diagonal Gaussians.
//
// Mu and Var have identical shapes: one row per sample, one column per
// dimension. Var holds variances (σ²), not standard deviations or log
// variances; encoder heads convert before constructing a Normal.
type Normal struct {
	Mu  *mat.Dense
	Var *mat.Dense
}

// NewNormal validates parameters and returns the distribution.
//
// Errors:
//   - ErrNilParam       — mu or va is nil.
//   - ErrShapeMismatch  — mu and va disagree on shape.
//   - ErrBadVariance    — any variance entry is ≤ 0, NaN, or ±Inf.
//
// Complexity: O(rows·cols).
func NewNormal(mu, va *mat.Dense) (*Normal, error) {
	if mu == nil || va == nil {
		return nil, ErrNilParam
	}
	mr, mc := mu.Dims()
	vr, vc := va.Dims()
	if mr != vr || mc != vc {
		return nil, ErrShapeMismatch
	}
	data := va.RawMatrix().Data
	for _, v := range data {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrBadVariance
		}
	}
	return &Normal{Mu: mu, Var: va}, nil
}

// Dims returns the batch shape (rows = samples, cols = dimensions).
func (n *Normal) Dims() (r, c int) { return n.Mu.Dims() }

// Mean returns a copy of the distribution mean.
func (n *Normal) Mean() *mat.Dense {
	out := mat.DenseCopyOf(n.Mu)
	return out
}

// StdDev returns a freshly allocated matrix of per-entry standard deviations.
func (n *Normal) StdDev() *mat.Dense {
	r, c := n.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, _ int, v float64) float64 { return math.Sqrt(v) }, n.Var)
	return out
}

// Rsample draws z = μ + σ·ε with ε ~ N(0, I) and returns both z and ε.
// Returning ε lets trainers backpropagate through the pathwise derivative:
// ∂z/∂μ = 1 and ∂z/∂σ² = ε / (2σ).
//
// A nil rng selects the fixed-seed default stream.
func (n *Normal) Rsample(rng *rand.Rand) (z, eps *mat.Dense) {
	rng = ensureRNG(rng)
	r, c := n.Dims()
	z = mat.NewDense(r, c, nil)
	eps = mat.NewDense(r, c, nil)
	mu := n.Mu.RawMatrix().Data
	va := n.Var.RawMatrix().Data
	zd := z.RawMatrix().Data
	ed := eps.RawMatrix().Data
	for i := range mu {
		e := rng.NormFloat64()
		ed[i] = e
		zd[i] = mu[i] + math.Sqrt(va[i])*e
	}
	return z, eps
}

// Sample draws z = μ + σ·ε and discards the noise. Use Rsample when the
// draw participates in a gradient computation.
func (n *Normal) Sample(rng *rand.Rand) *mat.Dense {
	z, _ := n.Rsample(rng)
	return z
}

// LogProb evaluates the elementwise Gaussian log-density of x:
//
//	log p(x) = −½·log(2π) − ½·log σ² − (x−μ)² / (2σ²)
//
// Returns ErrShapeMismatch when x does not match the parameter shape.
// Complexity: O(rows·cols).
func (n *Normal) LogProb(x *mat.Dense) (*mat.Dense, error) {
	if x == nil {
		return nil, ErrNilParam
	}
	r, c := n.Dims()
	xr, xc := x.Dims()
	if xr != r || xc != c {
		return nil, ErrShapeMismatch
	}
	out := mat.NewDense(r, c, nil)
	mu := n.Mu.RawMatrix().Data
	va := n.Var.RawMatrix().Data
	xd := x.RawMatrix().Data
	od := out.RawMatrix().Data
	for i := range od {
		d := xd[i] - mu[i]
		od[i] = -0.5*log2Pi - 0.5*math.Log(va[i]) - d*d/(2*va[i])
	}
	return out, nil
}

// KL computes the elementwise KL divergence KL(n ‖ prior) between diagonal
// Gaussians:
//
//	KL = ½·( σ²/σₚ² + (μₚ−μ)²/σₚ² − 1 + log(σₚ²/σ²) )
//
// A nil prior means the standard Normal N(0, I). A non-nil prior may either
// match the batch shape exactly or consist of a single row that is broadcast
// across the batch. Returns ErrShapeMismatch otherwise.
//
// Complexity: O(rows·cols).
func (n *Normal) KL(prior *Normal) (*mat.Dense, error) {
	r, c := n.Dims()
	out := mat.NewDense(r, c, nil)
	mu := n.Mu.RawMatrix().Data
	va := n.Var.RawMatrix().Data
	od := out.RawMatrix().Data

	if prior == nil {
		// KL against N(0, I): ½(σ² + μ² − 1 − log σ²).
		for i := range od {
			od[i] = 0.5 * (va[i] + mu[i]*mu[i] - 1 - math.Log(va[i]))
		}
		return out, nil
	}

	pr, pc := prior.Dims()
	if pc != c || (pr != r && pr != 1) {
		return nil, ErrShapeMismatch
	}
	pmu := prior.Mu.RawMatrix().Data
	pva := prior.Var.RawMatrix().Data
	for i := range od {
		j := i
		if pr == 1 {
			j = i % c
		}
		d := pmu[j] - mu[i]
		od[i] = 0.5 * (va[i]/pva[j] + d*d/pva[j] - 1 + math.Log(pva[j]/va[i]))
	}
	return out, nil
}

// logAlpha returns log α = log σ² − log μ² for one entry, with μ² floored to
// keep the result finite near μ = 0.
func logAlpha(mu, va float64) float64 {
	m2 := mu * mu
	if m2 < sparseMuFloor {
		m2 = sparseMuFloor
	}
	return math.Log(va) - math.Log(m2)
}

// SparseKL evaluates the variational-dropout KL approximation elementwise:
//
//	−KL ≈ k₁·sigmoid(k₂ + k₃·log α) − ½·softplus(−log α) − k₁
//
// with log α = log σ² − log μ². This is the sparse-VAE regularizer: latent
// dimensions whose α grows large are effectively dropped.
//
// Complexity: O(rows·cols).
func (n *Normal) SparseKL() *mat.Dense {
	r, c := n.Dims()
	out := mat.NewDense(r, c, nil)
	mu := n.Mu.RawMatrix().Data
	va := n.Var.RawMatrix().Data
	od := out.RawMatrix().Data
	for i := range od {
		a := logAlpha(mu[i], va[i])
		neg := sparseK1*sigmoid(sparseK2+sparseK3*a) - 0.5*softplus(-a) - sparseK1
		od[i] = -neg
	}
	return out
}

// SparseKLGrad returns the elementwise gradients ∂KL/∂μ and ∂KL/∂σ² of the
// variational-dropout approximation computed by SparseKL.
//
// With a = log α and u = k₂ + k₃·a,
//
//	dKL/da  = −k₁·k₃·sigmoid(u)·(1−sigmoid(u)) − ½·sigmoid(−a)
//	∂a/∂σ²  = 1/σ²
//	∂a/∂μ   = −2/μ   (0 on the μ² floor, where a stops depending on μ)
//
// Complexity: O(rows·cols).
func (n *Normal) SparseKLGrad() (dMu, dVar *mat.Dense) {
	r, c := n.Dims()
	dMu = mat.NewDense(r, c, nil)
	dVar = mat.NewDense(r, c, nil)
	mu := n.Mu.RawMatrix().Data
	va := n.Var.RawMatrix().Data
	md := dMu.RawMatrix().Data
	vd := dVar.RawMatrix().Data
	for i := range md {
		a := logAlpha(mu[i], va[i])
		su := sigmoid(sparseK2 + sparseK3*a)
		dKda := -sparseK1*sparseK3*su*(1-su) - 0.5*sigmoid(-a)
		vd[i] = dKda / va[i]
		if mu[i]*mu[i] >= sparseMuFloor {
			md[i] = dKda * (-2 / mu[i])
		}
	}
	return dMu, dVar
}

// DropoutProbability returns the per-entry dropout probability α/(α+1).
// Entries close to 1 mark latent dimensions the sparse model has pruned.
func (n *Normal) DropoutProbability() *mat.Dense {
	r, c := n.Dims()
	out := mat.NewDense(r, c, nil)
	mu := n.Mu.RawMatrix().Data
	va := n.Var.RawMatrix().Data
	od := out.RawMatrix().Data
	for i := range od {
		alpha := math.Exp(logAlpha(mu[i], va[i]))
		od[i] = alpha / (alpha + 1)
	}
	return out
}
