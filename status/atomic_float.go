package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat stores a float64 as its bit pattern
// Zero value is ready to use (represents 0.0)
type AtomicFloat struct {
	bits atomic.Uint64
}

// Set stores a value
func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
}

// Get loads the value
func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}
