package control

import "sync/atomic"

// wallLoop groups one optional single-sensor wall-feedback path's enable
// flag, sensor collaborator, and running integral.
type wallLoop struct {
	enabled  atomic.Bool
	sensor   WallSensor
	integral atomicFloat32
}

// sideLoop models the side-close/side-far pair, which per §4.2 share one
// aggregate proportional term and one integral even though each half has
// its own enable flag and sensor.
type sideLoop struct {
	closeEnabled atomic.Bool
	farEnabled   atomic.Bool
	closeSensor  WallSensor
	farSensor    WallSensor
	integral     atomicFloat32
}

// Collaborators bundles every external dependency Tick needs, per §6.
// Any sensor field may be nil if that wall loop is unused by a given
// vehicle build; the corresponding loop must then stay disabled (enabling
// a loop with no sensor panics on the first tick that reads it, matching the "trusts returned values" contract of §7 — callers
// must not enable a loop they haven't wired).
type Collaborators struct {
	Encoders  Encoders
	Gyro      Gyro
	Constants ConstantsProvider
	Profile   ProfileLimits
	Driver    MotorDriver

	SideClose WallSensor
	SideFar   WallSensor
	Front     WallSensor
	Diagonal  WallSensor
}

// ControlState is the single, process-wide owner of every mutable motion
// variable described in §3. One instance exists per physical robot. Tick is
// its sole writer for the tick-owned fields; all other methods are the
// planner/telemetry-side accessors, safe to call from any goroutine per the
// visibility contract in §5.
type ControlState struct {
	params Params
	deps   Collaborators

	// Setpoints
	targetLinearSpeed atomicFloat32
	idealAngularSpeed atomicFloat32

	// Profiler state
	idealLinearSpeed atomicFloat32

	// Controller state
	linearError      atomicFloat32
	angularError     atomicFloat32
	lastLinearError  atomicFloat32
	lastAngularError atomicFloat32

	side     sideLoop
	front    wallLoop
	diagonal wallLoop

	// Outputs
	voltageLeft  atomicFloat32
	voltageRight atomicFloat32
	pwmLeft      atomic.Int32
	pwmRight     atomic.Int32

	// Flags
	motorControlEnabled atomic.Bool
	collisionDetected   atomic.Bool
}

// New constructs a ControlState wired to the given collaborators, zeroed
// per §3 ("initialised to zero before the scheduler starts").
func New(params Params, deps Collaborators) *ControlState {
	s := &ControlState{params: params, deps: deps}
	s.side.closeSensor = deps.SideClose
	s.side.farSensor = deps.SideFar
	s.front.sensor = deps.Front
	s.diagonal.sensor = deps.Diagonal
	return s
}

// --- Setpoint writes (planner) ---

func (s *ControlState) SetTargetLinearSpeed(v float32) { s.targetLinearSpeed.Store(v) }
func (s *ControlState) SetIdealAngularSpeed(v float32)  { s.idealAngularSpeed.Store(v) }

// --- Enable toggles (planner) ---

func (s *ControlState) EnableMotorControl()  { s.motorControlEnabled.Store(true) }
func (s *ControlState) DisableMotorControl() { s.motorControlEnabled.Store(false) }

func (s *ControlState) SideSensorsCloseControl(on bool) { s.side.closeEnabled.Store(on) }
func (s *ControlState) SideSensorsFarControl(on bool)   { s.side.farEnabled.Store(on) }
func (s *ControlState) FrontSensorsControl(on bool)     { s.front.enabled.Store(on) }
func (s *ControlState) DiagonalSensorsControl(on bool)  { s.diagonal.enabled.Store(on) }

// DisableWallsControl disables the side-close, side-far, and front loops.
// The diagonal loop is intentionally left untouched here, matching
// original_source/control.c's disable_walls_control exactly; reset_motion
// (see reset.go) disables all four explicitly instead.
func (s *ControlState) DisableWallsControl() {
	s.SideSensorsCloseControl(false)
	s.SideSensorsFarControl(false)
	s.FrontSensorsControl(false)
}

// --- Observability (planner/telemetry) ---

func (s *ControlState) GetLeftMotorVoltage() float32  { return s.voltageLeft.Load() }
func (s *ControlState) GetRightMotorVoltage() float32 { return s.voltageRight.Load() }
func (s *ControlState) GetLeftPWM() int32             { return s.pwmLeft.Load() }
func (s *ControlState) GetRightPWM() int32            { return s.pwmRight.Load() }
func (s *ControlState) GetTargetLinearSpeed() float32 { return s.targetLinearSpeed.Load() }
func (s *ControlState) GetIdealLinearSpeed() float32  { return s.idealLinearSpeed.Load() }
func (s *ControlState) GetIdealAngularSpeed() float32 { return s.idealAngularSpeed.Load() }

func (s *ControlState) GetMeasuredLinearSpeed() float32 {
	return (s.deps.Encoders.LeftSpeed() + s.deps.Encoders.RightSpeed()) / 2
}

func (s *ControlState) GetMeasuredAngularSpeed() float32 {
	return -s.deps.Gyro.ZRadPerSec()
}

func (s *ControlState) CollisionDetected() bool { return s.collisionDetected.Load() }

// Snapshot is a telemetry convenience returning a value copy of every
// observable field in one call, adapted from the paired
// Speed()/TargetSpeed() accessors (x/devices/motor.Motor) into a single
// struct return. It is still racy field-by-field relative to a concurrent
// Tick.
type Snapshot struct {
	TargetLinearSpeed float32
	IdealLinearSpeed  float32
	IdealAngularSpeed float32
	MeasuredLinear    float32
	MeasuredAngular   float32
	VoltageLeft       float32
	VoltageRight      float32
	PWMLeft           int32
	PWMRight          int32
	CollisionDetected bool
	MotorControlOn    bool
}

func (s *ControlState) Snapshot() Snapshot {
	return Snapshot{
		TargetLinearSpeed: s.GetTargetLinearSpeed(),
		IdealLinearSpeed:  s.GetIdealLinearSpeed(),
		IdealAngularSpeed: s.GetIdealAngularSpeed(),
		MeasuredLinear:    s.GetMeasuredLinearSpeed(),
		MeasuredAngular:   s.GetMeasuredAngularSpeed(),
		VoltageLeft:       s.GetLeftMotorVoltage(),
		VoltageRight:      s.GetRightMotorVoltage(),
		PWMLeft:           s.GetLeftPWM(),
		PWMRight:          s.GetRightPWM(),
		CollisionDetected: s.CollisionDetected(),
		MotorControlOn:    s.motorControlEnabled.Load(),
	}
}
