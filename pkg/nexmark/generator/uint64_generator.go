package generator

import (
	"golang.org/x/exp/rand"
)

// NextUint64 returns a uniform value in [0, n). n must be positive.
func NextUint64(random *rand.Rand, n uint64) uint64 {
	return random.Uint64n(n)
}

// nextInWindow picks uniformly among the window most recent ids ending at last.
func nextInWindow(random *rand.Rand, last uint64, window uint64) uint64 {
	count := last + 1
	if window > count {
		window = count
	}
	return count - window + NextUint64(random, window)
}
