package nn

import (
	"math"

	exprand "golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Initializer fills a weight matrix in place before training starts.
// Implementations are deterministic: the same Seed reproduces the same
// weights, and Seed==0 selects a fixed default stream.
type Initializer interface {
	Initialize(w *mat.Dense)
}

// defaultInitSeed is the fixed “zero” seed for weight initialization.
const defaultInitSeed uint64 = 1

// seedOrDefault applies the seed==0 ⇒ default policy.
func seedOrDefault(seed uint64) uint64 {
	if seed == 0 {
		return defaultInitSeed
	}
	return seed
}

// XavierUniform draws from U(−l, l) with l = √(6/(fanIn+fanOut)) — the
// Glorot initialization that keeps activation variance stable through
// tanh/sigmoid stacks.
type XavierUniform struct {
	Seed uint64
}

// Initialize fills w; fanIn and fanOut are taken from the matrix shape.
func (x XavierUniform) Initialize(w *mat.Dense) {
	fanIn, fanOut := w.Dims()
	limit := math.Sqrt(6.0 / float64(fanIn+fanOut))
	u := distuv.Uniform{
		Min: -limit,
		Max: limit,
		Src: exprand.NewSource(seedOrDefault(x.Seed)),
	}
	data := w.RawMatrix().Data
	for i := range data {
		data[i] = u.Rand()
	}
}

// HeNormal draws from N(0, 2/fanIn) — the Kaiming initialization suited to
// ReLU stacks.
type HeNormal struct {
	Seed uint64
}

// Initialize fills w; fanIn is the row count.
func (h HeNormal) Initialize(w *mat.Dense) {
	fanIn, _ := w.Dims()
	n := distuv.Normal{
		Mu:    0,
		Sigma: math.Sqrt(2.0 / float64(fanIn)),
		Src:   exprand.NewSource(seedOrDefault(h.Seed)),
	}
	data := w.RawMatrix().Data
	for i := range data {
		data[i] = n.Rand()
	}
}

// deriveSeed mixes a base seed and a stream identifier into a new 64-bit
// seed via a SplitMix64-style finalizer, giving decorrelated substreams.
func deriveSeed(base, stream uint64) uint64 {
	x := base ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// streamInitializer hands every initialized matrix its own derived
// substream, so two same-shaped layers built from one initializer do not
// clone each other's weights.
type streamInitializer struct {
	base uint64
	next uint64
	mk   func(seed uint64) Initializer
}

// Initialize delegates to a freshly derived single-seed initializer.
func (s *streamInitializer) Initialize(w *mat.Dense) {
	s.mk(deriveSeed(s.base, s.next)).Initialize(w)
	s.next++
}

// NewXavierStream returns a XavierUniform initializer that advances to a
// new derived substream for every matrix it fills. This is the right
// initializer to share across a whole model build.
func NewXavierStream(seed uint64) Initializer {
	return &streamInitializer{
		base: seedOrDefault(seed),
		mk:   func(s uint64) Initializer { return XavierUniform{Seed: s} },
	}
}

// NewHeNormalStream is the ReLU-oriented counterpart of NewXavierStream.
func NewHeNormalStream(seed uint64) Initializer {
	return &streamInitializer{
		base: seedOrDefault(seed),
		mk:   func(s uint64) Initializer { return HeNormal{Seed: s} },
	}
}

// NormalInit draws from N(Mean, Std²) with explicit moments.
type NormalInit struct {
	Mean float64
	Std  float64
	Seed uint64
}

// Initialize fills w from the configured Normal.
func (g NormalInit) Initialize(w *mat.Dense) {
	n := distuv.Normal{
		Mu:    g.Mean,
		Sigma: g.Std,
		Src:   exprand.NewSource(seedOrDefault(g.Seed)),
	}
	data := w.RawMatrix().Data
	for i := range data {
		data[i] = n.Rand()
	}
}
