package data

import (
	"math/rand"
)

// Loader iterates a Dataset in mini-batches. With shuffling enabled the row
// order is drawn from a seeded deterministic stream, re-derived on every
// Reset so epochs differ while runs reproduce.
type Loader struct {
	ds        *Dataset
	batchSize int
	dropLast  bool
	shuffle   bool
	seed      int64

	rng   *rand.Rand
	order []int
	pos   int
}

// LoaderOption configures NewLoader.
type LoaderOption func(*Loader)

// WithBatchSize sets the mini-batch row count (default 32).
func WithBatchSize(n int) LoaderOption {
	return func(l *Loader) { l.batchSize = n }
}

// WithShuffle enables row shuffling from the given seed
// (seed==0 ⇒ fixed default stream).
func WithShuffle(seed int64) LoaderOption {
	return func(l *Loader) {
		l.shuffle = true
		l.seed = seed
	}
}

// WithDropLast discards a trailing batch smaller than the batch size.
func WithDropLast() LoaderOption {
	return func(l *Loader) { l.dropLast = true }
}

// NewLoader validates options and positions the iterator at the first batch.
//
// Errors: ErrBadBatchSize.
func NewLoader(ds *Dataset, opts ...LoaderOption) (*Loader, error) {
	l := &Loader{ds: ds, batchSize: 32}
	for _, opt := range opts {
		opt(l)
	}
	if l.batchSize < 1 {
		return nil, ErrBadBatchSize
	}
	if l.shuffle {
		l.rng = rngFromSeed(l.seed)
	}
	l.order = make([]int, ds.NumRows())
	l.Reset()
	return l, nil
}

// Reset rewinds to the first batch, reshuffling when enabled. The shuffle
// stream continues from the constructor seed, so consecutive epochs see
// different orders while two equally-seeded loaders stay in lockstep.
func (l *Loader) Reset() {
	for i := range l.order {
		l.order[i] = i
	}
	if l.shuffle {
		shuffleIntsInPlace(l.order, l.rng)
	}
	l.pos = 0
}

// NumBatches returns how many batches one pass yields under the current
// drop-last policy.
func (l *Loader) NumBatches() int {
	n := l.ds.NumRows() / l.batchSize
	if !l.dropLast && l.ds.NumRows()%l.batchSize != 0 {
		n++
	}
	return n
}

// Next returns the next batch as a row-aligned Dataset and true, or nil and
// false when the pass is exhausted. Call Reset to start the next epoch.
func (l *Loader) Next() (*Dataset, bool) {
	if l.pos >= len(l.order) {
		return nil, false
	}
	end := l.pos + l.batchSize
	if end > len(l.order) {
		if l.dropLast {
			return nil, false
		}
		end = len(l.order)
	}
	batch := l.ds.Rows(l.order[l.pos:end])
	l.pos = end
	return batch, true
}
