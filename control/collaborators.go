package control

// Encoders reports the latest left/right wheel speed, in meters per second,
// signed so that reverse rotation reads negative. Implementations manage
// their own update cadence; the tick context only reads.
type Encoders interface {
	LeftSpeed() float32
	RightSpeed() float32
}

// Gyro reports the latest yaw rate about the vehicle's Z axis, in radians
// per second, in the sensor's own sign convention. The controller negates
// it (see ControlState.GetMeasuredAngularSpeed) to match the vehicle body frame.
type Gyro interface {
	ZRadPerSec() float32
}

// WallSensor reports a signed geometric error in arbitrary units, scaled by
// the gain the caller applies. Positive means "too far from the target
// geometry" in the sign convention the sensor collaborator fixes; the
// controller treats a positive aggregate as requesting a positive angular
// correction.
type WallSensor interface {
	Error() float32
}

// ProfileLimits supplies the speed profiler's acceleration/deceleration
// ceilings. Implementations may change the returned values between calls
// (e.g. a tunable-constants provider), so the profiler re-reads them every
// tick rather than caching them at construction.
type ProfileLimits interface {
	LinearAcceleration() float32
	LinearDeceleration() float32
}

// ControlConstants is a point-in-time snapshot of the feedback law's gains.
type ControlConstants struct {
	KPLinear  float32
	KDLinear  float32
	KPAngular float32
	KDAngular float32

	KPAngularSide     float32
	KIAngularSide     float32
	KPAngularFront    float32
	KIAngularFront    float32
	KPAngularDiagonal float32
	KIAngularDiagonal float32
}

// ConstantsProvider returns the current gain snapshot. Implementations may
// hot-reload the underlying values (see package config); the tick context
// calls this once per tick and uses the returned value for the whole tick.
type ConstantsProvider interface {
	Get() ControlConstants
}

// MotorDriver is the PWM output and saturation-tracking collaborator. It
// owns polarity, clamping, and the saturation counter used for collision
// detection; the control core only ever commands signed duty values and
// reads the accumulated saturation tick count.
type MotorDriver interface {
	// InputVoltage returns the current supply voltage, in volts.
	InputVoltage() float32

	// PowerLeft and PowerRight command a signed duty in
	// [-DriverPWMPeriod, +DriverPWMPeriod].
	PowerLeft(pwm int32)
	PowerRight(pwm int32)

	// SaturationTicks returns the number of ticks, since the last reset,
	// that any motor's commanded PWM exceeded the hardware range.
	SaturationTicks() uint32

	// ResetSaturationTicks zeroes the saturation counter.
	ResetSaturationTicks()

	// Off disables PWM output entirely.
	Off()
}
