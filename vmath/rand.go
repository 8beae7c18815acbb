package vmath

// FastRand is a seeded xorshift64 source for AI choices and noise
// Not safe for concurrent use; each consumer owns one
type FastRand struct {
	state uint64
}

// NewFastRand seeds a generator; xorshift is stuck at 0, so 0 becomes 1
func NewFastRand(seed uint64) *FastRand {
	return &FastRand{state: max(seed, 1)}
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	s := r.state
	s ^= s << 13
	s ^= s >> 17
	s ^= s << 5
	r.state = s
	return float64(s>>11) / (1 << 53)
}

// Chance reports true with probability p
func (r *FastRand) Chance(p float64) bool {
	return r.Float64() < p
}
