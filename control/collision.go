package control

// checkCollision implements §4.5: once the motor driver's saturation
// counter exceeds T_SAT ticks, latch the collision flag and force the
// master gate off. The latch is only cleared by ResetCollisionDetection.
func (s *ControlState) checkCollision() {
	if s.deps.Driver.SaturationTicks() > s.params.saturationTickLimit() {
		s.collisionDetected.Store(true)
		s.motorControlEnabled.Store(false)
	}
}
