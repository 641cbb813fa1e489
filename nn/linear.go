package nn

import (
	"gonum.org/v1/gonum/mat"
)

// Linear is a fully connected layer computing y = x·W + b over a batch.
// W is in×out, b is 1×out and broadcast across rows. Biases start at zero.
type Linear struct {
	name string
	in   int
	out  int

	w *mat.Dense // in×out
	b *mat.Dense // 1×out

	gw *mat.Dense
	gb *mat.Dense

	x *mat.Dense // input cached by Forward for Backward
}

// NewLinear constructs a layer with the given parameter-name prefix.
// A nil init defaults to XavierUniform with the fixed default seed.
//
// Errors: ErrBadDims for non-positive dimensions.
func NewLinear(name string, in, out int, init Initializer) (*Linear, error) {
	if in <= 0 || out <= 0 {
		return nil, ErrBadDims
	}
	if init == nil {
		init = XavierUniform{}
	}
	l := &Linear{
		name: name,
		in:   in,
		out:  out,
		w:    mat.NewDense(in, out, nil),
		b:    mat.NewDense(1, out, nil),
		gw:   mat.NewDense(in, out, nil),
		gb:   mat.NewDense(1, out, nil),
	}
	init.Initialize(l.w)
	return l, nil
}

// InDim returns the input width.
func (l *Linear) InDim() int { return l.in }

// OutDim returns the output width.
func (l *Linear) OutDim() int { return l.out }

// Forward computes y = x·W + b and caches x.
// Complexity: O(rows·in·out).
func (l *Linear) Forward(x *mat.Dense) (*mat.Dense, error) {
	if x == nil {
		return nil, ErrNilInput
	}
	rows, cols := x.Dims()
	if cols != l.in {
		return nil, ErrShapeMismatch
	}
	y := mat.NewDense(rows, l.out, nil)
	y.Mul(x, l.w)
	yd := y.RawMatrix().Data
	bd := l.b.RawMatrix().Data
	for r := 0; r < rows; r++ {
		row := yd[r*l.out : (r+1)*l.out]
		for c := range row {
			row[c] += bd[c]
		}
	}
	l.x = x
	return y, nil
}

// Backward accumulates ∂L/∂W = xᵀ·grad and ∂L/∂b = Σ_rows grad, and returns
// ∂L/∂x = grad·Wᵀ.
// Complexity: O(rows·in·out).
func (l *Linear) Backward(grad *mat.Dense) (*mat.Dense, error) {
	if grad == nil {
		return nil, ErrNilInput
	}
	if l.x == nil {
		return nil, ErrNoForward
	}
	rows, _ := l.x.Dims()
	gr, gc := grad.Dims()
	if gr != rows || gc != l.out {
		return nil, ErrShapeMismatch
	}

	var dw mat.Dense
	dw.Mul(l.x.T(), grad)
	l.gw.Add(l.gw, &dw)

	gd := grad.RawMatrix().Data
	gbd := l.gb.RawMatrix().Data
	for r := 0; r < rows; r++ {
		row := gd[r*l.out : (r+1)*l.out]
		for c := range row {
			gbd[c] += row[c]
		}
	}

	gx := mat.NewDense(rows, l.in, nil)
	gx.Mul(grad, l.w.T())
	return gx, nil
}

// Params exposes the weight and bias under stable names.
func (l *Linear) Params() []Param {
	return []Param{
		{Name: l.name + ".w", W: l.w, G: l.gw},
		{Name: l.name + ".b", W: l.b, G: l.gb},
	}
}

// ZeroGrad clears both gradient accumulators.
func (l *Linear) ZeroGrad() {
	l.gw.Zero()
	l.gb.Zero()
}
