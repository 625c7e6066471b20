// Package encoder drives a quadrature wheel encoder and exposes wheel
// speed directly in meters per second, adapted from the interrupt-driven
// quadrature decoder in x/devices/encoder — same 4x decode
// state-transition table, but reporting linear wheel speed instead of
// RPM, and packaged as a left/right Pair implementing control.Encoders.
package encoder

import (
	"sync/atomic"
	"time"

	"github.com/itohio/micromouse-core/hw"
)

// quadrature state transition lookup table: maps a 4-bit
// (oldAB<<2 | newAB) transition to a delta of -1, 0, or +1 counts.
var states = [16]int8{0, -1, 1, 0, 1, 0, 0, -1, -1, 0, 0, 1, 0, 1, -1, 0}

// Config describes the wheel geometry needed to turn encoder counts into
// a linear speed.
type Config struct {
	CountsPerRevolution int64         // encoder counts per full wheel revolution
	WheelCircumference  float32       // meters per revolution
	UpdateInterval      time.Duration // minimum time between speed recomputation
}

// DefaultConfig returns reasonable defaults for a 512 PPR encoder (4x
// decoded) on a 32mm-radius wheel.
func DefaultConfig() Config {
	return Config{
		CountsPerRevolution: 2048,
		WheelCircumference:  2 * 3.14159265 * 0.032,
		UpdateInterval:      10 * time.Millisecond,
	}
}

// Wheel tracks one wheel's quadrature encoder and derives its linear speed.
type Wheel struct {
	pinA, pinB hw.Pin
	config     Config

	position int64
	oldAB    uint32

	lastPosition  int64
	lastSpeedTime int64 // unix micros
	speedMicroMPS int64 // speed * 1e6, fixed point, signed
}

// New creates a Wheel encoder. The caller is responsible for calling
// Sample whenever pinA/pinB may have changed, either from a GPIO edge
// interrupt or, on platforms with no interrupt wiring, once per control
// tick; this package does not assume a particular interrupt API across
// platforms.
func New(pinA, pinB hw.Pin, config Config) *Wheel {
	if config.CountsPerRevolution == 0 {
		config.CountsPerRevolution = 2048
	}
	if config.UpdateInterval == 0 {
		config.UpdateInterval = 10 * time.Millisecond
	}
	w := &Wheel{pinA: pinA, pinB: pinB, config: config}
	initialAB := uint32(0)
	if pinA.Get() {
		initialAB |= 0x02
	}
	if pinB.Get() {
		initialAB |= 0x01
	}
	w.oldAB = initialAB | (initialAB << 2)
	w.lastSpeedTime = time.Now().UnixMicro()
	return w
}

// Sample processes one quadrature edge. Safe to call from an interrupt
// context; it is the only method that mutates oldAB, so oldAB itself needs
// no atomics.
func (w *Wheel) Sample() {
	aHigh := w.pinA.Get()
	bHigh := w.pinB.Get()

	w.oldAB <<= 2
	if aHigh {
		w.oldAB |= 0x02
	}
	if bHigh {
		w.oldAB |= 0x01
	}

	delta := int64(states[w.oldAB&0x0f])
	if delta != 0 {
		atomic.AddInt64(&w.position, delta)
	}
}

// Position returns the raw encoder count.
func (w *Wheel) Position() int64 {
	return atomic.LoadInt64(&w.position)
}

// Reset zeroes the position and speed tracking.
func (w *Wheel) Reset() {
	atomic.StoreInt64(&w.position, 0)
	atomic.StoreInt64(&w.lastPosition, 0)
	atomic.StoreInt64(&w.lastSpeedTime, time.Now().UnixMicro())
	atomic.StoreInt64(&w.speedMicroMPS, 0)
}

// SpeedMPS returns the wheel's linear speed in meters per second, signed
// so reverse rotation reads negative. Recomputed at most once per
// UpdateInterval; intervening calls return the last computed value.
func (w *Wheel) SpeedMPS() float32 {
	w.updateSpeed()
	return float32(atomic.LoadInt64(&w.speedMicroMPS)) / 1e6
}

func (w *Wheel) updateSpeed() {
	now := time.Now().UnixMicro()
	last := atomic.LoadInt64(&w.lastSpeedTime)
	if time.Duration(now-last)*time.Microsecond < w.config.UpdateInterval {
		return
	}

	pos := atomic.LoadInt64(&w.position)
	lastPos := atomic.LoadInt64(&w.lastPosition)
	deltaCounts := pos - lastPos
	deltaMicros := now - last
	if deltaMicros <= 0 {
		return
	}

	revolutions := float64(deltaCounts) / float64(w.config.CountsPerRevolution)
	meters := revolutions * float64(w.config.WheelCircumference)
	seconds := float64(deltaMicros) / 1e6
	speed := meters / seconds

	atomic.StoreInt64(&w.speedMicroMPS, int64(speed*1e6))
	atomic.StoreInt64(&w.lastPosition, pos)
	atomic.StoreInt64(&w.lastSpeedTime, now)
}

// Pair wraps a left/right wheel encoder pair and implements
// control.Encoders without control needing to import this package.
type Pair struct {
	Left, Right *Wheel
}

func (p Pair) LeftSpeed() float32  { return p.Left.SpeedMPS() }
func (p Pair) RightSpeed() float32 { return p.Right.SpeedMPS() }
