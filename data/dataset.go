package data

import (
	"gonum.org/v1/gonum/mat"
)

// Dataset is a row-aligned collection of view matrices: view i is an
// n×dᵢ matrix and row k of every view describes the same sample.
type Dataset struct {
	views []*mat.Dense
	rows  int
}

// NewDataset validates alignment and wraps the views. The matrices are
// referenced, not copied; callers must not mutate them behind the dataset.
//
// Errors: ErrNoViews, ErrNilView, ErrRaggedViews, ErrEmptyDataset.
func NewDataset(views []*mat.Dense) (*Dataset, error) {
	if len(views) == 0 {
		return nil, ErrNoViews
	}
	rows := -1
	for _, v := range views {
		if v == nil {
			return nil, ErrNilView
		}
		r, _ := v.Dims()
		if rows == -1 {
			rows = r
		} else if r != rows {
			return nil, ErrRaggedViews
		}
	}
	if rows == 0 {
		return nil, ErrEmptyDataset
	}
	return &Dataset{views: views, rows: rows}, nil
}

// NumViews returns the view count.
func (d *Dataset) NumViews() int { return len(d.views) }

// NumRows returns the sample count.
func (d *Dataset) NumRows() int { return d.rows }

// View returns the i-th view matrix.
func (d *Dataset) View(i int) *mat.Dense { return d.views[i] }

// Views returns the underlying view slice.
func (d *Dataset) Views() []*mat.Dense { return d.views }

// Dims returns the feature width of every view.
func (d *Dataset) Dims() []int {
	dims := make([]int, len(d.views))
	for i, v := range d.views {
		_, dims[i] = v.Dims()
	}
	return dims
}

// Rows materializes the selected rows of every view into a new Dataset,
// preserving cross-view alignment. Indices outside [0, NumRows) are the
// caller's bug and will panic via gonum, as for any bad matrix index.
func (d *Dataset) Rows(idx []int) *Dataset {
	out := make([]*mat.Dense, len(d.views))
	for v, view := range d.views {
		_, cols := view.Dims()
		sub := mat.NewDense(len(idx), cols, nil)
		for r, i := range idx {
			sub.SetRow(r, mat.Row(nil, i, view))
		}
		out[v] = sub
	}
	return &Dataset{views: out, rows: len(idx)}
}

// Split partitions the rows into train and test datasets. frac is the
// train share in (0,1); the row permutation is drawn from the seeded
// deterministic stream (seed==0 ⇒ fixed default).
//
// Errors: ErrBadFraction; a split that would leave either side empty
// returns ErrEmptyDataset.
func (d *Dataset) Split(frac float64, seed int64) (train, test *Dataset, err error) {
	if frac <= 0 || frac >= 1 {
		return nil, nil, ErrBadFraction
	}
	nTrain := int(float64(d.rows) * frac)
	if nTrain == 0 || nTrain == d.rows {
		return nil, nil, ErrEmptyDataset
	}

	perm := make([]int, d.rows)
	for i := range perm {
		perm[i] = i
	}
	shuffleIntsInPlace(perm, rngFromSeed(seed))

	return d.Rows(perm[:nTrain]), d.Rows(perm[nTrain:]), nil
}
