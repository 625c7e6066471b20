package control

// updateIdealLinearSpeed slews idealLinearSpeed toward targetLinearSpeed
// under the acceleration/deceleration limits supplied by Profile, per §4.1.
// Δ_up and Δ_dn are read fresh every call since the planner may change the
// profile limits between ticks.
func (s *ControlState) updateIdealLinearSpeed() {
	ideal := s.idealLinearSpeed.Load()
	target := s.targetLinearSpeed.Load()

	switch {
	case ideal < target:
		ideal += s.deps.Profile.LinearAcceleration() / s.params.FTickHz
		if ideal > target {
			ideal = target
		}
	case ideal > target:
		ideal -= s.deps.Profile.LinearDeceleration() / s.params.FTickHz
		if ideal < target {
			ideal = target
		}
	}

	s.idealLinearSpeed.Store(ideal)
}
