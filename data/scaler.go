package data

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Scaler holds per-view, per-column standardization statistics fitted on
// one dataset (normally the training split) and replayable on another.
type Scaler struct {
	means [][]float64
	stds  [][]float64
}

// scalerStdFloor replaces a zero column deviation so constant features map
// to zero instead of NaN.
const scalerStdFloor = 1e-12

// Standardize fits a Scaler on d and transforms d in place to zero mean and
// unit variance per column. Returns the fitted Scaler for reuse on held-out
// data.
//
// Complexity: O(rows·total feature count).
func (d *Dataset) Standardize() (*Scaler, error) {
	s := &Scaler{
		means: make([][]float64, len(d.views)),
		stds:  make([][]float64, len(d.views)),
	}
	for v, view := range d.views {
		rows, cols := view.Dims()
		s.means[v] = make([]float64, cols)
		s.stds[v] = make([]float64, cols)
		col := make([]float64, rows)
		for c := 0; c < cols; c++ {
			mat.Col(col, c, view)
			mean, std := stat.MeanStdDev(col, nil)
			if std < scalerStdFloor || math.IsNaN(std) {
				std = 1
			}
			s.means[v][c] = mean
			s.stds[v][c] = std
		}
	}
	if err := s.Apply(d); err != nil {
		return nil, err
	}
	return s, nil
}

// Apply transforms d in place with the fitted statistics.
//
// Errors: ErrScalerNotFitted before Standardize, ErrViewMismatch when d has
// a different view layout than the fitting dataset.
func (s *Scaler) Apply(d *Dataset) error {
	if len(s.means) == 0 {
		return ErrScalerNotFitted
	}
	if len(d.views) != len(s.means) {
		return ErrViewMismatch
	}
	for v, view := range d.views {
		rows, cols := view.Dims()
		if cols != len(s.means[v]) {
			return ErrViewMismatch
		}
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				view.Set(r, c, (view.At(r, c)-s.means[v][c])/s.stds[v][c])
			}
		}
	}
	return nil
}

// Mean returns the fitted mean of column c in view v.
func (s *Scaler) Mean(v, c int) float64 { return s.means[v][c] }

// Std returns the fitted standard deviation of column c in view v.
func (s *Scaler) Std(v, c int) float64 { return s.stds[v][c] }
