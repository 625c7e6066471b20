// Package control implements the periodic motion-control core of a
// micromouse-class wheeled robot: a speed profiler, a wall-feedback
// aggregator, a combined PD/PI feedback law, voltage-to-PWM conversion, and
// saturation-driven collision detection, composed into one Tick invoked at
// a fixed frequency by an external scheduler.
//
// The algorithm is ported field-for-field from the vehicle's original C
// firmware (see SPEC_FULL.md); ControlState replaces the firmware's static
// globals with atomics so Tick remains the sole writer of tick-owned state
// while planner/telemetry code reads and writes setpoints and flags from
// any goroutine without a lock in the hot path.
package control
