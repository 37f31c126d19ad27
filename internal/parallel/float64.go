package parallel

import (
	"math"
	"sync/atomic"
)

// Float64Adder is an atomic float64 accumulator. Go's sync/atomic has no
// native float64 addition, so Add runs a compare-and-swap loop over the
// IEEE 754 bit pattern. The zero value holds 0.0 and is ready to use.
//
// Float64Adder is the shared accumulator of the parallel summation engine:
// every worker folds its block's partial sum into it with a single Add call,
// and the combined total is read with Load after all workers have finished.
type Float64Adder struct {
	bits atomic.Uint64
}

// Add atomically adds delta to the accumulator.
func (a *Float64Adder) Add(delta float64) {
	for {
		old := a.bits.Load()
		updated := math.Float64bits(math.Float64frombits(old) + delta)
		if a.bits.CompareAndSwap(old, updated) {
			return
		}
	}
}

// Load atomically reads the current value.
func (a *Float64Adder) Load() float64 {
	return math.Float64frombits(a.bits.Load())
}

// Store atomically replaces the current value. It is used to reset the
// accumulator between runs.
func (a *Float64Adder) Store(value float64) {
	a.bits.Store(math.Float64bits(value))
}
