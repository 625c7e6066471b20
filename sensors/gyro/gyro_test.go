package gyro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeBus is a minimal hw.I2C that serves a fixed register map, enough to
// exercise Configure/Connected/ZRadPerSec without real hardware.
type fakeBus struct {
	registers map[uint8]uint8
	gyroZ     int16
}

func newFakeBus() *fakeBus {
	return &fakeBus{registers: map[uint8]uint8{regWhoAmI: whoAmIValue}}
}

func (b *fakeBus) Tx(addr uint16, w, r []byte) error {
	if len(w) == 2 {
		// write8(reg, value)
		b.registers[w[0]] = w[1]
		return nil
	}
	reg := w[0]
	if reg == regGyroZOutH && len(r) == 2 {
		r[0] = byte(b.gyroZ >> 8)
		r[1] = byte(b.gyroZ)
		return nil
	}
	if len(r) == 1 {
		r[0] = b.registers[reg]
		return nil
	}
	return nil
}

func TestConfigureWritesExpectedRegisters(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, 0, Range500DPS)

	require.NoError(t, d.Configure())

	require.Equal(t, uint8(0x00), bus.registers[regPWRMgmt1])
	require.Equal(t, uint8(7), bus.registers[regSMPLRTDiv])
	require.Equal(t, uint8(Range500DPS)<<3, bus.registers[regGyroConfig])
}

func TestConnected(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, 0, Range250DPS)
	require.True(t, d.Connected())

	bus.registers[regWhoAmI] = 0x00
	require.False(t, d.Connected())
}

func TestZRadPerSecConversion(t *testing.T) {
	bus := newFakeBus()
	d := New(bus, 0, Range250DPS)
	// 131 LSB/DPS at 250DPS range: 131 raw counts == 1 deg/s.
	bus.gyroZ = 131

	got := d.ZRadPerSec()

	require.InDelta(t, 0.017453, got, 1e-4) // 1 deg/s in rad/s
}

func TestZRadPerSecOnBusErrorReturnsZero(t *testing.T) {
	d := New(errorBus{}, 0, Range250DPS)
	require.Equal(t, float32(0), d.ZRadPerSec())
}

type errorBus struct{}

func (errorBus) Tx(addr uint16, w, r []byte) error { return errTx }

var errTx = &txError{}

type txError struct{}

func (*txError) Error() string { return "i2c tx failed" }
