package control

import (
	"math"
	"sync/atomic"
)

// atomicFloat32 stores a float32 behind an atomic.Uint32, giving single-field
// visibility/indivisibility across the tick/planner boundary without a mutex
// in the tick's hot path. Mirrors the bare sync/atomic style used in
// x/devices/encoder for cross-goroutine position tracking.
type atomicFloat32 struct {
	bits atomic.Uint32
}

func (a *atomicFloat32) Load() float32 {
	return math.Float32frombits(a.bits.Load())
}

func (a *atomicFloat32) Store(v float32) {
	a.bits.Store(math.Float32bits(v))
}

// Add is only safe when the caller is the sole writer of this field (the
// tick context, per the package's concurrency contract). It is not a
// compare-and-swap: two concurrent Add callers would race.
func (a *atomicFloat32) Add(delta float32) float32 {
	v := a.Load() + delta
	a.Store(v)
	return v
}
