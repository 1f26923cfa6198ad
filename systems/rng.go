package systems

import "math/rand"

// RunSeed derives a per-run seed from a base seed and the swept probabilities
// so each combination is reproducible on its own.
func RunSeed(base int64, reproProb, predProb int) int64 {
	x := uint64(base)
	x ^= uint64(reproProb) * 0x9e3779b97f4a7c15
	x ^= uint64(predProb) * 0xc2b2ae3d27d4eb4f
	// splitmix64 finalizer
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// NewRand returns a random stream seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
