package layout

import (
	"math/rand"
	"time"
)

// Source supplies uniform samples in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// NewSeededRNG creates a seeded random number generator and returns the seed
// it used. If seed is 0 the current time is used, so callers can report the
// effective seed for reproducing a layout.
func NewSeededRNG(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}
