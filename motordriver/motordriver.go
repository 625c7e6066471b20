// Package motordriver adapts a PWM-driven H-bridge pair plus an I2C
// voltage-sense ADC into control.MotorDriver, grounded in the
// devices.PWM/PWMDevice interfaces (x/devices/pwm.go) for output and the
// as734x register read/write idiom (x/devices/as734x/bus.go) for the ADC.
// Unlike Motor (x/devices/motor), which closes its own PID speed loop
// internally, this driver is a thin duty-cycle and saturation counter:
// the PID loop lives in the control package, one level up.
package motordriver

import (
	"fmt"
	"sync/atomic"

	"github.com/itohio/micromouse-core/hw"
)

const (
	adcAddress   = 0x48
	regConfig    = 0x01
	regConvert   = 0x00
	vrefMillivolts = 4096.0
)

// Config describes one motor channel's PWM wiring and the driver's
// saturation/voltage-sense setup.
type Config struct {
	PWMPeriod   int32   // hardware PWM counter period, duty commands clamp to [-PWMPeriod, PWMPeriod]
	VoltageGain float32 // converts raw ADC counts to volts (resistor-divider dependent)
	ADCAddress  uint8   // I2C address of the voltage-sense ADC, 0 for the default 0x48
}

// channel pairs one PWM output with the direction pin that steers it,
// following the TypeDirPWM wiring (x/devices/motor: one Dir pin, one PWM
// pin) rather than a duty-only PWM interface, since hw.PWM.Set only
// accepts [0,1] and the control core commands a signed duty.
type channel struct {
	pwm hw.PWM
	dir hw.Pin
}

// Driver commands a left/right motor pair through dir+PWM channels and
// reports supply voltage and saturation-tick accounting.
type Driver struct {
	left, right channel
	bus         hw.I2C
	config      Config

	saturationTicks atomic.Uint32
}

// New creates a motor driver. leftPWM/rightPWM must already be configured at
// the motor PWM frequency (cmd/micromousectl configures at 20kHz or more);
// leftDir/rightDir set forward (high) vs. reverse (low) polarity.
// bus is the I2C bus the voltage-sense ADC sits on, may be nil if voltage
// sensing is unavailable.
func New(leftPWM, rightPWM hw.PWM, leftDir, rightDir hw.Pin, bus hw.I2C, config Config) *Driver {
	if config.PWMPeriod == 0 {
		config.PWMPeriod = 1000
	}
	if config.ADCAddress == 0 {
		config.ADCAddress = adcAddress
	}
	return &Driver{
		left:  channel{pwm: leftPWM, dir: leftDir},
		right: channel{pwm: rightPWM, dir: rightDir},
		bus:   bus,
		config: config,
	}
}

// PowerLeft implements control.MotorDriver.
func (d *Driver) PowerLeft(pwm int32) {
	d.power(d.left, pwm)
}

// PowerRight implements control.MotorDriver.
func (d *Driver) PowerRight(pwm int32) {
	d.power(d.right, pwm)
}

func (d *Driver) power(ch channel, pwm int32) {
	clamped := pwm
	if clamped > d.config.PWMPeriod {
		clamped = d.config.PWMPeriod
	} else if clamped < -d.config.PWMPeriod {
		clamped = -d.config.PWMPeriod
	}
	if clamped != pwm {
		d.saturationTicks.Add(1)
	}

	if ch.dir != nil {
		ch.dir.Set(clamped >= 0)
	}

	duty := float32(abs32(clamped)) / float32(d.config.PWMPeriod)
	ch.pwm.Set(duty)
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// SaturationTicks implements control.MotorDriver.
func (d *Driver) SaturationTicks() uint32 {
	return d.saturationTicks.Load()
}

// ResetSaturationTicks implements control.MotorDriver.
func (d *Driver) ResetSaturationTicks() {
	d.saturationTicks.Store(0)
}

// Off implements control.MotorDriver.
func (d *Driver) Off() {
	d.left.pwm.Set(0)
	d.right.pwm.Set(0)
}

// InputVoltage implements control.MotorDriver, reading the supply rail
// through a single-shot conversion on an ADS1015-class I2C ADC, following
// the as734x package's readReg/writeReg register-access pattern.
func (d *Driver) InputVoltage() float32 {
	if d.bus == nil {
		return 0
	}
	raw, err := d.readConversion()
	if err != nil {
		return 0
	}
	return float32(raw) / 32768.0 * vrefMillivolts / 1000.0 * d.config.VoltageGain
}

func (d *Driver) readConversion() (int16, error) {
	if err := d.writeReg16(regConfig, 0x8583); err != nil {
		return 0, fmt.Errorf("adc config: %w", err)
	}
	data := make([]byte, 2)
	if err := d.bus.Tx(uint16(d.config.ADCAddress), []byte{regConvert}, data); err != nil {
		return 0, fmt.Errorf("adc read: %w", err)
	}
	return int16(data[0])<<8 | int16(data[1]), nil
}

func (d *Driver) writeReg16(reg uint8, value uint16) error {
	return d.bus.Tx(uint16(d.config.ADCAddress), []byte{reg, byte(value >> 8), byte(value)}, nil)
}
