// Package mvae - deterministic random generation for sampling and shuffles.
//
// Policy: seed==0 ⇒ fixed default seed; no time-based sources anywhere.
// math/rand.Rand is NOT goroutine-safe; each Model owns its stream.
package mvae

import "math/rand"

// defaultRNGSeed is the fixed “zero” seed. Arbitrary but stable to keep
// reproducible defaults.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand under the zero-seed policy.
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}
	return rand.New(rand.NewSource(s))
}
