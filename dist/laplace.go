package dist

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Laplace is a batch of independent Laplace distributions. It serves as a
// heavy-tailed likelihood for views with outlier-prone measurements.
type Laplace struct {
	Loc   *mat.Dense
	Scale *mat.Dense
}

// NewLaplace validates parameters and returns the distribution.
//
// Errors:
//   - ErrNilParam       — loc or scale is nil.
//   - ErrShapeMismatch  — loc and scale disagree on shape.
//   - ErrBadScale       — any scale entry is ≤ 0, NaN, or ±Inf.
func NewLaplace(loc, scale *mat.Dense) (*Laplace, error) {
	if loc == nil || scale == nil {
		return nil, ErrNilParam
	}
	lr, lc := loc.Dims()
	sr, sc := scale.Dims()
	if lr != sr || lc != sc {
		return nil, ErrShapeMismatch
	}
	for _, v := range scale.RawMatrix().Data {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, ErrBadScale
		}
	}
	return &Laplace{Loc: loc, Scale: scale}, nil
}

// Dims returns the batch shape.
func (l *Laplace) Dims() (r, c int) { return l.Loc.Dims() }

// Mean returns a copy of the distribution location.
func (l *Laplace) Mean() *mat.Dense { return mat.DenseCopyOf(l.Loc) }

// LogProb evaluates the elementwise Laplace log-density of x:
//
//	log p(x) = −log(2b) − |x−μ| / b
//
// Returns ErrShapeMismatch when x does not match the parameter shape.
func (l *Laplace) LogProb(x *mat.Dense) (*mat.Dense, error) {
	if x == nil {
		return nil, ErrNilParam
	}
	r, c := l.Dims()
	xr, xc := x.Dims()
	if xr != r || xc != c {
		return nil, ErrShapeMismatch
	}
	out := mat.NewDense(r, c, nil)
	ld := l.Loc.RawMatrix().Data
	sd := l.Scale.RawMatrix().Data
	xd := x.RawMatrix().Data
	od := out.RawMatrix().Data
	for i := range od {
		od[i] = -math.Log(2*sd[i]) - math.Abs(xd[i]-ld[i])/sd[i]
	}
	return out, nil
}

// Sample draws via inverse-CDF: u ~ U(−½,½), x = μ − b·sign(u)·log(1−2|u|).
// A nil rng selects the fixed-seed default stream.
func (l *Laplace) Sample(rng *rand.Rand) *mat.Dense {
	rng = ensureRNG(rng)
	r, c := l.Dims()
	out := mat.NewDense(r, c, nil)
	ld := l.Loc.RawMatrix().Data
	sd := l.Scale.RawMatrix().Data
	od := out.RawMatrix().Data
	for i := range od {
		u := rng.Float64() - 0.5
		sign := 1.0
		if u < 0 {
			sign = -1.0
		}
		od[i] = ld[i] - sd[i]*sign*math.Log1p(-2*math.Abs(u))
	}
	return out
}
