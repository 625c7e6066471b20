package control

// Params holds the compile-time constants of §6: the tick frequency, the
// motor driver's PWM range, and the saturation window used for collision
// detection. Unlike the original firmware's preprocessor constants, these
// are plain fields so a single binary can drive more than one vehicle
// configuration (e.g. in tests).
type Params struct {
	// FTickHz is the frequency, in Hz, at which Tick is invoked.
	FTickHz float32

	// DriverPWMPeriod is the signed PWM duty range: PWM commands are
	// clamped by the motor driver to [-DriverPWMPeriod, +DriverPWMPeriod].
	DriverPWMPeriod int32

	// MaxMotorDriverSaturationPeriod is T_SAT expressed in seconds; the
	// collision detector latches once the driver's saturation counter
	// exceeds MaxMotorDriverSaturationPeriod * FTickHz ticks.
	MaxMotorDriverSaturationPeriod float32
}

// saturationTickLimit returns T_SAT in ticks.
func (p Params) saturationTickLimit() uint32 {
	limit := p.MaxMotorDriverSaturationPeriod * p.FTickHz
	if limit < 0 {
		return 0
	}
	return uint32(limit)
}
