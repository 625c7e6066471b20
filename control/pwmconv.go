package control

// voltageToPWM implements §4.4: pwm = v / V_supply * DRIVER_PWM_PERIOD,
// truncated toward zero. Go's int32(float32) conversion already truncates
// toward zero, so the conversion is explicit rather than accidental and
// keeps the original firmware's implicit truncation rather than rounding
// to nearest.
func (s *ControlState) voltageToPWM(voltage float32) int32 {
	supply := s.deps.Driver.InputVoltage()
	if supply == 0 {
		return 0
	}
	return int32(voltage / supply * float32(s.params.DriverPWMPeriod))
}
