package control

// ResetControlErrors implements §4.7: zeroes all three wall-loop integrals
// and the four running/previous speed-error accumulators.
func (s *ControlState) ResetControlErrors() {
	s.side.integral.Store(0)
	s.front.integral.Store(0)
	s.diagonal.integral.Store(0)
	s.linearError.Store(0)
	s.angularError.Store(0)
	s.lastLinearError.Store(0)
	s.lastAngularError.Store(0)
}

// ResetControlSpeed zeroes the target/ideal linear speed and the ideal
// angular speed.
func (s *ControlState) ResetControlSpeed() {
	s.targetLinearSpeed.Store(0)
	s.idealLinearSpeed.Store(0)
	s.idealAngularSpeed.Store(0)
}

// ResetCollisionDetection clears the collision latch and the driver's
// saturation counter.
func (s *ControlState) ResetCollisionDetection() {
	s.collisionDetected.Store(false)
	s.deps.Driver.ResetSaturationTicks()
}

// ResetControlAll composes ResetControlErrors, ResetControlSpeed, and
// ResetCollisionDetection.
func (s *ControlState) ResetControlAll() {
	s.ResetControlErrors()
	s.ResetControlSpeed()
	s.ResetCollisionDetection()
}

// ResetMotion is the documented shutdown path (§4.7): disable motor
// control, disable every wall loop, command the driver off, then zero all
// control state. The driver must be commanded off before control state is
// zeroed so no stale pulse is produced — do not reorder this.
//
// Note this disables the diagonal loop explicitly, unlike
// DisableWallsControl/original_source/control.c's disable_walls_control
// (which only covers side-close/side-far/front). Testable property 6
// requires every wall loop disabled after a full reset_motion, so the
// diagonal loop is cleared here directly rather than by delegating to
// DisableWallsControl. See DESIGN.md for this Open Question decision.
func (s *ControlState) ResetMotion() {
	s.DisableMotorControl()
	s.DisableWallsControl()
	s.DiagonalSensorsControl(false)
	s.deps.Driver.Off()
	s.ResetControlAll()
}
