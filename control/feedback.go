package control

// feedbackLaw runs stage 3 (§4.3): PD on the running-sum linear/angular
// speed errors, plus straight P+I on each enabled wall loop's term, then
// splits the combined linear/angular voltage into left/right commands.
//
// e_L and e_A are running sums, never decayed except by the reset
// primitives (see reset.go) — this is intentional: summing the
// per-tick instantaneous error gives an implicit integrator, so the outer
// loop is effectively PI on speed even though the coefficients multiply a
// PD-shaped expression of the sum.
func (s *ControlState) feedbackLaw(sideFeedback, frontFeedback, diagFeedback float32) (voltageLeft, voltageRight float32) {
	c := s.deps.Constants.Get()

	linearErr := s.linearError.Add(s.idealLinearSpeed.Load() - s.GetMeasuredLinearSpeed())
	angularErr := s.angularError.Add(s.idealAngularSpeed.Load() - s.GetMeasuredAngularSpeed())

	lastLinear := s.lastLinearError.Load()
	lastAngular := s.lastAngularError.Load()

	linearVoltage := c.KPLinear*linearErr + c.KDLinear*(linearErr-lastLinear)
	angularVoltage := c.KPAngular*angularErr + c.KDAngular*(angularErr-lastAngular) +
		c.KPAngularSide*sideFeedback + c.KIAngularSide*s.side.integral.Load() +
		c.KPAngularFront*frontFeedback + c.KIAngularFront*s.front.integral.Load() +
		c.KPAngularDiagonal*diagFeedback + c.KIAngularDiagonal*s.diagonal.integral.Load()

	s.lastLinearError.Store(linearErr)
	s.lastAngularError.Store(angularErr)

	voltageLeft = linearVoltage + angularVoltage
	voltageRight = linearVoltage - angularVoltage
	return voltageLeft, voltageRight
}
