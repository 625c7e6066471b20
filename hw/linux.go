//go:build linux && !tinygo

package hw

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"
)

// LinuxI2C implements I2C using the Linux i2c-dev character device,
// trimmed to controller-mode Tx only; target-mode event handling has no
// use on this vehicle.
type LinuxI2C struct {
	fd   *os.File
	addr uint8
}

// OpenI2C opens an I2C bus, e.g. "/dev/i2c-1".
func OpenI2C(device string) (*LinuxI2C, error) {
	fd, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open I2C device %s: %w", device, err)
	}
	return &LinuxI2C{fd: fd}, nil
}

const i2cSlave = 0x0703

func (b *LinuxI2C) setAddr(addr uint8) error {
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, b.fd.Fd(), i2cSlave, uintptr(addr))
	if errno != 0 {
		return fmt.Errorf("set I2C slave address: %v", errno)
	}
	return nil
}

// Tx implements I2C.
func (b *LinuxI2C) Tx(addr uint16, w, r []byte) error {
	if b.addr != uint8(addr) {
		if err := b.setAddr(uint8(addr)); err != nil {
			return err
		}
		b.addr = uint8(addr)
	}

	if len(w) > 0 {
		if _, err := b.fd.Write(w); err != nil {
			return fmt.Errorf("I2C write failed: %w", err)
		}
	}
	if len(r) > 0 {
		if _, err := b.fd.Read(r); err != nil {
			return fmt.Errorf("I2C read failed: %w", err)
		}
	}
	return nil
}

// Close closes the underlying device file.
func (b *LinuxI2C) Close() error {
	return b.fd.Close()
}

// LinuxPin implements Pin via the Linux sysfs GPIO interface, adapted
// from x/devices/pin_linux.go LinuxPin with interrupt support dropped:
// this module's encoder package is sampled by a polling scheduler tick
// rather than an edge interrupt (see sensors/encoder).
type LinuxPin struct {
	pinNum int
	value  *os.File
}

// OpenPin opens an already-exported GPIO pin for reading/writing.
func OpenPin(pinNum int) (*LinuxPin, error) {
	path := fmt.Sprintf("/sys/class/gpio/gpio%d/value", pinNum)
	value, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("open GPIO pin %d: %w (ensure pin is exported)", pinNum, err)
	}
	return &LinuxPin{pinNum: pinNum, value: value}, nil
}

// Get implements Pin.
func (p *LinuxPin) Get() bool {
	buf := make([]byte, 1)
	if _, err := p.value.ReadAt(buf, 0); err != nil {
		return false
	}
	return buf[0] == '1'
}

// Set implements Pin.
func (p *LinuxPin) Set(value bool) {
	b := byte('0')
	if value {
		b = '1'
	}
	p.value.WriteAt([]byte{b}, 0)
}

// Close closes the pin's value file.
func (p *LinuxPin) Close() error {
	return p.value.Close()
}

// LinuxPWMDevice implements PWMDevice via the Linux sysfs PWM interface,
// adapted from x/devices/pwm_linux.go.
type LinuxPWMDevice struct {
	mu        sync.Mutex
	frequency uint32
	channels  map[int]*linuxPWMChannel
}

// NewPWMDevice creates a sysfs-backed PWM controller for the given chip.
func NewPWMDevice(chip int) *LinuxPWMDevice {
	return &LinuxPWMDevice{channels: make(map[int]*linuxPWMChannel), frequency: 0}
}

// Configure implements PWMDevice.
func (d *LinuxPWMDevice) Configure(frequencyHz uint32) error {
	if frequencyHz == 0 {
		return fmt.Errorf("frequency must be > 0")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frequency = frequencyHz
	for _, ch := range d.channels {
		periodNs := int64(1e9 / float64(frequencyHz))
		if err := ch.setPeriod(periodNs); err != nil {
			return err
		}
		ch.periodNs = periodNs
	}
	return nil
}

// Channel returns a PWM channel for the given sysfs PWM chip channel
// number, addressed directly rather than through a GPIO pin mapping
// table (this driver runs on arbitrary carrier boards, not just a
// Raspberry Pi's fixed pin set).
func (d *LinuxPWMDevice) Channel(pin Pin) (PWM, error) {
	channelPin, ok := pin.(*pwmChannelPin)
	if !ok {
		return nil, fmt.Errorf("pin must identify a sysfs PWM channel, use hw.PWMChannelPin")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if ch, exists := d.channels[channelPin.channel]; exists {
		return ch, nil
	}

	ch := &linuxPWMChannel{
		chip:     channelPin.chip,
		channel:  channelPin.channel,
		periodNs: int64(1e9 / float64(d.frequency)),
	}
	if err := ch.export(); err != nil {
		return nil, fmt.Errorf("export PWM chip %d channel %d: %w", ch.chip, ch.channel, err)
	}
	if err := ch.setPeriod(ch.periodNs); err != nil {
		return nil, fmt.Errorf("set PWM period: %w", err)
	}
	d.channels[channelPin.channel] = ch
	return ch, nil
}

// pwmChannelPin identifies a sysfs PWM chip/channel pair. It satisfies
// Pin only so it can flow through PWMDevice.Channel's existing
// signature; Get/Set are unused.
type pwmChannelPin struct {
	chip, channel int
}

func (pwmChannelPin) Get() bool  { return false }
func (pwmChannelPin) Set(bool)   {}

// PWMChannelPin addresses a sysfs PWM chip/channel pair.
func PWMChannelPin(chip, channel int) Pin {
	return &pwmChannelPin{chip: chip, channel: channel}
}

type linuxPWMChannel struct {
	chip, channel int
	periodNs      int64
	enabled       bool
}

func (ch *linuxPWMChannel) export() error {
	pwmPath := fmt.Sprintf("/sys/class/pwm/pwmchip%d/pwm%d", ch.chip, ch.channel)
	if _, err := os.Stat(pwmPath); err == nil {
		return nil
	}
	exportPath := fmt.Sprintf("/sys/class/pwm/pwmchip%d/export", ch.chip)
	if err := os.WriteFile(exportPath, []byte(strconv.Itoa(ch.channel)), 0); err != nil {
		return err
	}
	time.Sleep(100 * time.Millisecond)
	return nil
}

func (ch *linuxPWMChannel) setPeriod(periodNs int64) error {
	path := fmt.Sprintf("/sys/class/pwm/pwmchip%d/pwm%d/period", ch.chip, ch.channel)
	return os.WriteFile(path, []byte(strconv.FormatInt(periodNs, 10)), 0)
}

func (ch *linuxPWMChannel) setDutyCycle(dutyNs int64) error {
	if dutyNs < 0 {
		dutyNs = 0
	}
	if dutyNs > ch.periodNs {
		dutyNs = ch.periodNs
	}
	path := fmt.Sprintf("/sys/class/pwm/pwmchip%d/pwm%d/duty_cycle", ch.chip, ch.channel)
	return os.WriteFile(path, []byte(strconv.FormatInt(dutyNs, 10)), 0)
}

func (ch *linuxPWMChannel) enable() error {
	if ch.enabled {
		return nil
	}
	path := fmt.Sprintf("/sys/class/pwm/pwmchip%d/pwm%d/enable", ch.chip, ch.channel)
	if err := os.WriteFile(path, []byte("1"), 0); err != nil {
		return err
	}
	ch.enabled = true
	return nil
}

// Set implements PWM.
func (ch *linuxPWMChannel) Set(duty float32) error {
	if duty < 0 {
		duty = 0
	}
	if duty > 1 {
		duty = 1
	}
	if err := ch.setDutyCycle(int64(float64(ch.periodNs) * float64(duty))); err != nil {
		return err
	}
	return ch.enable()
}
