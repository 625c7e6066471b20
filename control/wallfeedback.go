package control

// wallFeedback runs stage 2 (§4.2) for all four loops and returns the three
// instantaneous proportional terms the feedback law needs this tick. Each
// loop's integral is updated in place; a disabled loop's integral is left
// untouched (preserved, not cleared — only reset_control_errors clears it).
//
// The side-close/side-far pair is deliberately irregular: both halves
// accumulate into the single side_sensors_feedback term, and critically
// each half also adds that *running* feedback value into the shared
// integral — so when both are enabled, the close contribution is folded
// into the integral twice (once standalone, once inside the running sum
// the far half adds) while the far contribution is folded in once. This reproduces original_source/control.c lines 325-333 exactly;
// see SPEC_FULL.md §4.2/§4.9 and the design note in DESIGN.md before
// "fixing" it.
func (s *ControlState) wallFeedback() (sideFeedback, frontFeedback, diagFeedback float32) {
	if s.side.closeEnabled.Load() {
		sideFeedback += s.side.closeSensor.Error()
		s.side.integral.Add(sideFeedback)
	}
	if s.side.farEnabled.Load() {
		sideFeedback += s.side.farSensor.Error()
		s.side.integral.Add(sideFeedback)
	}

	if s.front.enabled.Load() {
		frontFeedback = s.front.sensor.Error()
		s.front.integral.Add(frontFeedback)
	}

	if s.diagonal.enabled.Load() {
		diagFeedback = s.diagonal.sensor.Error()
		s.diagonal.integral.Add(diagFeedback)
	}

	return sideFeedback, frontFeedback, diagFeedback
}
