package world

import (
	crand "crypto/rand"
	"fmt"
	"math/big"
	"math/rand"
)

// maxSeed bounds generated seeds so they survive JSON consumers that read
// numbers as float64.
const maxSeed = 1 << 32

// NewSeed draws a seed in [1, maxSeed] from crypto/rand. Zero is reserved to
// mean "pick a seed for me".
func NewSeed() (int64, error) {
	n, err := crand.Int(crand.Reader, big.NewInt(maxSeed))
	if err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return n.Int64() + 1, nil
}

// randRange returns a uniform integer in [lo, hi]. An empty range yields lo
// without consuming randomness.
func randRange(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
