package optim

import (
	"math"

	"github.com/katalvlaran/multivae/nn"
)

// SGD is stochastic gradient descent with classical momentum:
//
//	vₜ = momentum·vₜ₋₁ + g
//	w  = w − lr·vₜ
//
// Momentum 0 degenerates to the plain update w = w − lr·g.
type SGD struct {
	lr       float64
	momentum float64
	velocity map[string][]float64
}

// NewSGD validates hyperparameters and returns the optimizer.
//
// Errors: ErrBadLearningRate, ErrBadMomentum.
func NewSGD(lr, momentum float64) (*SGD, error) {
	if lr <= 0 || math.IsNaN(lr) || math.IsInf(lr, 0) {
		return nil, ErrBadLearningRate
	}
	if momentum < 0 || momentum >= 1 {
		return nil, ErrBadMomentum
	}
	return &SGD{lr: lr, momentum: momentum, velocity: make(map[string][]float64)}, nil
}

// Step applies one update to every parameter.
// Complexity: O(total parameter count).
func (s *SGD) Step(params []nn.Param) error {
	if err := checkParams(params); err != nil {
		return err
	}
	for _, p := range params {
		wd := p.W.RawMatrix().Data
		gd := p.G.RawMatrix().Data
		if s.momentum == 0 {
			for i := range wd {
				wd[i] -= s.lr * gd[i]
			}
			continue
		}
		v := s.velocity[p.Name]
		if v == nil {
			v = make([]float64, len(wd))
			s.velocity[p.Name] = v
		} else if len(v) != len(wd) {
			return ErrShapeDrift
		}
		for i := range wd {
			v[i] = s.momentum*v[i] + gd[i]
			wd[i] -= s.lr * v[i]
		}
	}
	return nil
}

// compile-time interface conformance
var _ Optimizer = (*SGD)(nil)
