package arise

import (
	"math/rand"
	"time"
)

// Rand is the randomness source used by loot rolls and any randomized pick.
// *math/rand.Rand satisfies it; tests inject a scripted sequence instead.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a time-seeded randomness source.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
