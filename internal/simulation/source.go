package simulation

import (
	"time"

	"golang.org/x/exp/rand"
)

// NewSource returns a source for the given seed. A zero seed draws one from
// the clock.
func NewSource(seed int64) rand.Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.NewSource(uint64(seed))
}

// StreamSource returns an independent source for item index under a global
// seed, so a batch is reproducible however its items are scheduled.
func StreamSource(seed int64, index int) rand.Source {
	return rand.NewSource(splitmix64(uint64(seed) ^ splitmix64(uint64(index)+1)))
}

func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
