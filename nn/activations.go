package nn

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Activation names the elementwise nonlinearities this package builds into
// MLPs. The zero value is ActReLU.
type Activation int

const (
	// ActReLU is max(0, x).
	ActReLU Activation = iota

	// ActSigmoid is 1/(1+e⁻ˣ).
	ActSigmoid

	// ActTanh is tanh(x).
	ActTanh

	// ActIdentity passes values through unchanged.
	ActIdentity
)

// String implements fmt.Stringer for diagnostics and checkpoints.
func (a Activation) String() string {
	switch a {
	case ActReLU:
		return "relu"
	case ActSigmoid:
		return "sigmoid"
	case ActTanh:
		return "tanh"
	case ActIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// activation is the shared elementwise Layer. Backward works from the
// cached forward output, except relu, which masks on the cached input.
type activation struct {
	kind Activation
	out  *mat.Dense // cached output for Backward
	in   *mat.Dense // cached input (needed only by relu's mask)
}

// NewActivation returns the elementwise layer for kind.
func NewActivation(kind Activation) Layer {
	return &activation{kind: kind}
}

// Forward applies the nonlinearity elementwise.
func (a *activation) Forward(x *mat.Dense) (*mat.Dense, error) {
	if x == nil {
		return nil, ErrNilInput
	}
	r, c := x.Dims()
	out := mat.NewDense(r, c, nil)
	xd := x.RawMatrix().Data
	od := out.RawMatrix().Data
	switch a.kind {
	case ActReLU:
		for i := range od {
			if xd[i] > 0 {
				od[i] = xd[i]
			}
		}
	case ActSigmoid:
		for i := range od {
			if xd[i] >= 0 {
				od[i] = 1 / (1 + math.Exp(-xd[i]))
			} else {
				e := math.Exp(xd[i])
				od[i] = e / (1 + e)
			}
		}
	case ActTanh:
		for i := range od {
			od[i] = math.Tanh(xd[i])
		}
	case ActIdentity:
		copy(od, xd)
	}
	a.in = x
	a.out = out
	return out, nil
}

// Backward multiplies the incoming gradient by the local derivative.
func (a *activation) Backward(grad *mat.Dense) (*mat.Dense, error) {
	if grad == nil {
		return nil, ErrNilInput
	}
	if a.out == nil {
		return nil, ErrNoForward
	}
	r, c := a.out.Dims()
	gr, gc := grad.Dims()
	if gr != r || gc != c {
		return nil, ErrShapeMismatch
	}
	gx := mat.NewDense(r, c, nil)
	gd := grad.RawMatrix().Data
	od := a.out.RawMatrix().Data
	xd := a.in.RawMatrix().Data
	gxd := gx.RawMatrix().Data
	switch a.kind {
	case ActReLU:
		for i := range gxd {
			if xd[i] > 0 {
				gxd[i] = gd[i]
			}
		}
	case ActSigmoid:
		for i := range gxd {
			gxd[i] = gd[i] * od[i] * (1 - od[i])
		}
	case ActTanh:
		for i := range gxd {
			gxd[i] = gd[i] * (1 - od[i]*od[i])
		}
	case ActIdentity:
		copy(gxd, gd)
	}
	return gx, nil
}

// Params returns nil: activations are parameter-free.
func (a *activation) Params() []Param { return nil }

// ZeroGrad is a no-op for parameter-free layers.
func (a *activation) ZeroGrad() {}
