// Package gyro drives an MPU6050-class 6-axis IMU and exposes its Z-axis
// yaw rate in radians per second, adapted from the register-map driver in
// x/devices/mpu6050 but narrowed to the single axis the control core's
// feedback law needs.
package gyro

import (
	"fmt"
	"math"

	"github.com/itohio/micromouse-core/hw"
)

// DefaultAddress is the MPU6050's default I2C address.
const DefaultAddress = 0x68

const (
	regPWRMgmt1   = 0x6B
	regSMPLRTDiv  = 0x19
	regConfig     = 0x1A
	regGyroConfig = 0x1B
	regAccelCfg   = 0x1C
	regGyroZOutH  = 0x47
	regWhoAmI     = 0x75
	whoAmIValue   = 0x68
)

// FullScaleRange selects the gyroscope's configured sensitivity, matching
// the MPU6050's GYRO_CONFIG FS_SEL field.
type FullScaleRange uint8

const (
	Range250DPS FullScaleRange = iota
	Range500DPS
	Range1000DPS
	Range2000DPS
)

func (r FullScaleRange) lsbPerDPS() float32 {
	switch r {
	case Range500DPS:
		return 65.5
	case Range1000DPS:
		return 32.8
	case Range2000DPS:
		return 16.4
	default:
		return 131.0
	}
}

// Device wraps an I2C connection to an MPU6050.
type Device struct {
	bus     hw.I2C
	address uint8
	scale   FullScaleRange
}

// New creates a gyro driver. The bus must already be configured.
func New(bus hw.I2C, address uint8, scale FullScaleRange) *Device {
	if address == 0 {
		address = DefaultAddress
	}
	return &Device{bus: bus, address: address, scale: scale}
}

// Configure wakes the device and sets the sample rate, DLPF, and the
// requested gyro full-scale range.
func (d *Device) Configure() error {
	if err := d.write8(regPWRMgmt1, 0x00); err != nil {
		return fmt.Errorf("wake: %w", err)
	}
	if err := d.write8(regSMPLRTDiv, 7); err != nil {
		return fmt.Errorf("sample rate: %w", err)
	}
	if err := d.write8(regAccelCfg, 0x00); err != nil {
		return fmt.Errorf("accel config: %w", err)
	}
	if err := d.write8(regGyroConfig, uint8(d.scale)<<3); err != nil {
		return fmt.Errorf("gyro config: %w", err)
	}
	if err := d.write8(regConfig, 0x06); err != nil {
		return fmt.Errorf("dlpf config: %w", err)
	}
	return nil
}

// Connected verifies the device responds with the expected identity.
func (d *Device) Connected() bool {
	who, err := d.read8(regWhoAmI)
	return err == nil && who == whoAmIValue
}

// ZRadPerSec implements control.Gyro: reads the raw Z-axis gyro register
// and converts it to radians per second using the configured full-scale
// range.
func (d *Device) ZRadPerSec() float32 {
	data := make([]byte, 2)
	if err := d.bus.Tx(uint16(d.address), []byte{regGyroZOutH}, data); err != nil {
		return 0
	}
	raw := int16(data[0])<<8 | int16(data[1])
	degPerSec := float32(raw) / d.scale.lsbPerDPS()
	return degPerSec * float32(math.Pi) / 180
}

func (d *Device) write8(reg uint8, value uint8) error {
	return d.bus.Tx(uint16(d.address), []byte{reg, value}, nil)
}

func (d *Device) read8(reg uint8) (uint8, error) {
	data := make([]byte, 1)
	err := d.bus.Tx(uint16(d.address), []byte{reg}, data)
	return data[0], err
}
