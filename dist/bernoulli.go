package dist

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Bernoulli is a batch of independent Bernoulli distributions parameterized
// by logits, the natural output of a decoder's final linear layer.
type Bernoulli struct {
	Logits *mat.Dense
}

// NewBernoulli wraps decoder logits as a Bernoulli batch.
func NewBernoulli(logits *mat.Dense) (*Bernoulli, error) {
	if logits == nil {
		return nil, ErrNilParam
	}
	return &Bernoulli{Logits: logits}, nil
}

// Dims returns the batch shape.
func (b *Bernoulli) Dims() (r, c int) { return b.Logits.Dims() }

// Mean returns the success probabilities sigmoid(logits).
func (b *Bernoulli) Mean() *mat.Dense {
	r, c := b.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, _ int, v float64) float64 { return sigmoid(v) }, b.Logits)
	return out
}

// LogProb evaluates the elementwise Bernoulli log-likelihood of x ∈ [0,1]
// in the overflow-safe softplus form:
//
//	log p(x) = x·ℓ − softplus(ℓ)
//
// where ℓ is the logit. Returns ErrShapeMismatch when x does not match the
// parameter shape. Complexity: O(rows·cols).
func (b *Bernoulli) LogProb(x *mat.Dense) (*mat.Dense, error) {
	if x == nil {
		return nil, ErrNilParam
	}
	r, c := b.Dims()
	xr, xc := x.Dims()
	if xr != r || xc != c {
		return nil, ErrShapeMismatch
	}
	out := mat.NewDense(r, c, nil)
	ld := b.Logits.RawMatrix().Data
	xd := x.RawMatrix().Data
	od := out.RawMatrix().Data
	for i := range od {
		od[i] = xd[i]*ld[i] - softplus(ld[i])
	}
	return out, nil
}

// Sample draws 0/1 values with probability sigmoid(logit) each.
// A nil rng selects the fixed-seed default stream.
func (b *Bernoulli) Sample(rng *rand.Rand) *mat.Dense {
	rng = ensureRNG(rng)
	r, c := b.Dims()
	out := mat.NewDense(r, c, nil)
	ld := b.Logits.RawMatrix().Data
	od := out.RawMatrix().Data
	for i := range od {
		if rng.Float64() < sigmoid(ld[i]) {
			od[i] = 1
		}
	}
	return out
}
