package control

// Tick is the scheduler's entry point (§4.6), invoked at Params.FTickHz.
// When motor control is gated off, Tick is a no-op: it must not write
// voltages, PWMs, or errors, and must not call into the motor driver at
// all (testable property 3). When active, it runs the four stages in
// order — speed profiler, wall-feedback aggregation, feedback law, drive
// and saturation watch — and may transition motor control off on a
// detected collision.
//
// Tick must run to completion without suspension and stay deterministic
// and short relative to 1/FTickHz; it never logs and never allocates on
// its steady-state path.
func (s *ControlState) Tick() {
	if !s.motorControlEnabled.Load() {
		return
	}

	s.updateIdealLinearSpeed()

	sideFeedback, frontFeedback, diagFeedback := s.wallFeedback()

	voltageLeft, voltageRight := s.feedbackLaw(sideFeedback, frontFeedback, diagFeedback)
	s.voltageLeft.Store(voltageLeft)
	s.voltageRight.Store(voltageRight)

	pwmLeft := s.voltageToPWM(voltageLeft)
	pwmRight := s.voltageToPWM(voltageRight)
	s.pwmLeft.Store(pwmLeft)
	s.pwmRight.Store(pwmRight)

	s.deps.Driver.PowerLeft(pwmLeft)
	s.deps.Driver.PowerRight(pwmRight)

	s.checkCollision()
}
