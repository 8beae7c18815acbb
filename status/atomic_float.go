package status

import (
	"math"
	"sync/atomic"
)

// Gauge is an atomic float64 using bit conversion
// Zero value is ready to use (reads 0.0)
type Gauge struct {
	bits atomic.Uint64
}

// Set stores v
func (g *Gauge) Set(v float64) {
	g.bits.Store(math.Float64bits(v))
}

// Get loads the current value
func (g *Gauge) Get() float64 {
	return math.Float64frombits(g.bits.Load())
}

// Add atomically adds delta and returns the new value
func (g *Gauge) Add(delta float64) float64 {
	for {
		old := g.bits.Load()
		next := math.Float64frombits(old) + delta
		if g.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
