package control

import "sync"

// Fakes for the collaborator interfaces, used across the package's test
// files. Kept minimal and mutation-friendly rather than using a mocking
// framework, matching this codebase's plain hand-written fakes style.

type fakeEncoders struct {
	left, right float32
}

func (f *fakeEncoders) LeftSpeed() float32  { return f.left }
func (f *fakeEncoders) RightSpeed() float32 { return f.right }

type fakeGyro struct {
	z float32
}

func (f *fakeGyro) ZRadPerSec() float32 { return f.z }

type fakeWallSensor struct {
	err float32
}

func (f *fakeWallSensor) Error() float32 { return f.err }

type fakeProfile struct {
	accel, decel float32
}

func (f *fakeProfile) LinearAcceleration() float32 { return f.accel }
func (f *fakeProfile) LinearDeceleration() float32 { return f.decel }

type fakeConstants struct {
	c ControlConstants
}

func (f *fakeConstants) Get() ControlConstants { return f.c }

// fakeDriver stands in for the PWM motor driver and its saturation
// counter. SaturationTicks reports the saturationTicks field as set by the
// test, regardless of commanded PWM, letting tests simulate a jammed wheel
// without modeling hardware clamping.
type fakeDriver struct {
	mu sync.Mutex

	voltage float32

	lastLeftPWM, lastRightPWM   int32
	powerLeftCalls, powerRightCalls int
	offCalls                        int

	saturationTicks uint32
}

func (f *fakeDriver) InputVoltage() float32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voltage
}

func (f *fakeDriver) PowerLeft(pwm int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLeftPWM = pwm
	f.powerLeftCalls++
}

func (f *fakeDriver) PowerRight(pwm int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastRightPWM = pwm
	f.powerRightCalls++
}

func (f *fakeDriver) SaturationTicks() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saturationTicks
}

func (f *fakeDriver) ResetSaturationTicks() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saturationTicks = 0
}

func (f *fakeDriver) Off() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.offCalls++
}

// zeroGains returns a ControlConstants with every gain at zero, a
// convenient base for tests that only exercise one term.
func zeroGains() ControlConstants { return ControlConstants{} }

// testRig bundles a ControlState with direct handles to every fake
// collaborator, so tests can mutate sensor readings between ticks.
type testRig struct {
	state *ControlState

	encoders  *fakeEncoders
	gyro      *fakeGyro
	profile   *fakeProfile
	constants *fakeConstants
	driver    *fakeDriver

	sideClose *fakeWallSensor
	sideFar   *fakeWallSensor
	front     *fakeWallSensor
	diagonal  *fakeWallSensor
}

func newRig(params Params, constants ControlConstants, profile fakeProfile) *testRig {
	r := &testRig{
		encoders:  &fakeEncoders{},
		gyro:      &fakeGyro{},
		profile:   &profile,
		constants: &fakeConstants{c: constants},
		driver:    &fakeDriver{voltage: 1},
		sideClose: &fakeWallSensor{},
		sideFar:   &fakeWallSensor{},
		front:     &fakeWallSensor{},
		diagonal:  &fakeWallSensor{},
	}
	deps := Collaborators{
		Encoders:  r.encoders,
		Gyro:      r.gyro,
		Constants: r.constants,
		Profile:   r.profile,
		Driver:    r.driver,
		SideClose: r.sideClose,
		SideFar:   r.sideFar,
		Front:     r.front,
		Diagonal:  r.diagonal,
	}
	r.state = New(params, deps)
	return r
}
