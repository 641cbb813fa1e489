// Package data: sentinel errors and the deterministic RNG policy.
package data

import (
	"errors"
	"math/rand"
)

// Sentinel errors for dataset construction and iteration.
var (
	// ErrNoViews is returned when a dataset is built from zero views.
	ErrNoViews = errors.New("data: at least one view required")

	// ErrNilView is returned when a nil matrix appears among the views.
	ErrNilView = errors.New("data: nil view matrix")

	// ErrRaggedViews is returned when views disagree on the row count.
	ErrRaggedViews = errors.New("data: views disagree on sample count")

	// ErrEmptyDataset is returned when a dataset holds zero rows.
	ErrEmptyDataset = errors.New("data: dataset has no rows")

	// ErrBadBatchSize is returned for batch sizes below one.
	ErrBadBatchSize = errors.New("data: batch size must be >= 1")

	// ErrBadFraction is returned for split fractions outside (0, 1).
	ErrBadFraction = errors.New("data: split fraction must be in (0,1)")

	// ErrScalerNotFitted is returned when Apply precedes Standardize.
	ErrScalerNotFitted = errors.New("data: scaler not fitted")

	// ErrViewMismatch is returned when a scaler or generator meets a dataset
	// whose view count or dimensions differ from what it was built for.
	ErrViewMismatch = errors.New("data: view count or dimension mismatch")
)

// defaultRNGSeed is the fixed “zero” seed used when callers pass seed==0.
// The value is arbitrary but stable to keep reproducible defaults.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise use the provided seed verbatim.
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}
	return rand.New(rand.NewSource(s))
}

// shuffleIntsInPlace performs an in-place Fisher–Yates shuffle of a using rng.
// Complexity: O(n) time, O(1) extra space.
func shuffleIntsInPlace(a []int, rng *rand.Rand) {
	for i := len(a) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}
