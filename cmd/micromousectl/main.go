// Command micromousectl runs the motion-control tick loop against real
// hardware, wiring the sensor and actuator collaborators from
// sensors/, motordriver/, and config/ into a control.ControlState. Flag
// handling and the signal-driven shutdown context follow the
// cmd/spectrometer/main.go convention of the EasyRobot codebase this
// module was adapted from.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/itohio/micromouse-core/config"
	"github.com/itohio/micromouse-core/control"
	"github.com/itohio/micromouse-core/hw"
	"github.com/itohio/micromouse-core/logging"
	"github.com/itohio/micromouse-core/motordriver"
	"github.com/itohio/micromouse-core/sensors/encoder"
	"github.com/itohio/micromouse-core/sensors/gyro"
	"github.com/itohio/micromouse-core/sensors/wall"
)

func main() {
	app := &cli.App{
		Name:  "micromousectl",
		Usage: "run the micromouse motion-control tick loop",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "i2c", Value: "/dev/i2c-1", Usage: "I2C bus device"},
			&cli.StringFlag{Name: "config", Value: "constants.yaml", Usage: "path to the tunable-constants YAML file"},
			&cli.Float64Flag{Name: "tick-hz", Value: 1000, Usage: "control tick frequency, Hz"},
			&cli.Int64Flag{Name: "pwm-period", Value: 1000, Usage: "signed PWM duty range"},
			&cli.Float64Flag{Name: "saturation-period", Value: 0.1, Usage: "seconds of continuous saturation before a collision is latched"},
			&cli.IntFlag{Name: "left-dir-pin", Value: 17},
			&cli.IntFlag{Name: "right-dir-pin", Value: 27},
			&cli.IntFlag{Name: "left-encoder-a-pin", Value: 5},
			&cli.IntFlag{Name: "left-encoder-b-pin", Value: 6},
			&cli.IntFlag{Name: "right-encoder-a-pin", Value: 13},
			&cli.IntFlag{Name: "right-encoder-b-pin", Value: 19},
			&cli.IntFlag{Name: "left-pwm-chip", Value: 0},
			&cli.IntFlag{Name: "left-pwm-channel", Value: 0},
			&cli.IntFlag{Name: "right-pwm-chip", Value: 0},
			&cli.IntFlag{Name: "right-pwm-channel", Value: 1},
			&cli.IntFlag{Name: "v", Value: 2, Usage: "log verbosity, 0=ERROR .. 4=TRACE"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := logging.New(logging.LevelFromVerbosity(c.Int("v")))

	bus, err := hw.OpenI2C(c.String("i2c"))
	if err != nil {
		return fmt.Errorf("open I2C bus: %w", err)
	}

	gz := gyro.New(bus, 0, gyro.Range500DPS)
	if err := gz.Configure(); err != nil {
		return fmt.Errorf("configure gyro: %w", err)
	}

	leftDirPin, err := hw.OpenPin(c.Int("left-dir-pin"))
	if err != nil {
		return fmt.Errorf("open left dir pin: %w", err)
	}
	rightDirPin, err := hw.OpenPin(c.Int("right-dir-pin"))
	if err != nil {
		return fmt.Errorf("open right dir pin: %w", err)
	}

	pwmHz := uint32(c.Float64("tick-hz")) * 20
	if pwmHz < 20000 {
		pwmHz = 20000
	}
	leftPWMDevice := hw.NewPWMDevice(c.Int("left-pwm-chip"))
	if err := leftPWMDevice.Configure(pwmHz); err != nil {
		return fmt.Errorf("configure left PWM device: %w", err)
	}
	leftPWM, err := leftPWMDevice.Channel(hw.PWMChannelPin(c.Int("left-pwm-chip"), c.Int("left-pwm-channel")))
	if err != nil {
		return fmt.Errorf("open left PWM channel: %w", err)
	}
	rightPWMDevice := hw.NewPWMDevice(c.Int("right-pwm-chip"))
	if err := rightPWMDevice.Configure(pwmHz); err != nil {
		return fmt.Errorf("configure right PWM device: %w", err)
	}
	rightPWM, err := rightPWMDevice.Channel(hw.PWMChannelPin(c.Int("right-pwm-chip"), c.Int("right-pwm-channel")))
	if err != nil {
		return fmt.Errorf("open right PWM channel: %w", err)
	}

	driver := motordriver.New(leftPWM, rightPWM, leftDirPin, rightDirPin, bus, motordriver.Config{
		PWMPeriod:   int32(c.Int64("pwm-period")),
		VoltageGain: 1,
	})

	constants, err := config.Load(c.String("config"), log)
	if err != nil {
		return fmt.Errorf("load constants: %w", err)
	}
	defer constants.Close()

	leftEncA, err := hw.OpenPin(c.Int("left-encoder-a-pin"))
	if err != nil {
		return fmt.Errorf("open left encoder A pin: %w", err)
	}
	leftEncB, err := hw.OpenPin(c.Int("left-encoder-b-pin"))
	if err != nil {
		return fmt.Errorf("open left encoder B pin: %w", err)
	}
	rightEncA, err := hw.OpenPin(c.Int("right-encoder-a-pin"))
	if err != nil {
		return fmt.Errorf("open right encoder A pin: %w", err)
	}
	rightEncB, err := hw.OpenPin(c.Int("right-encoder-b-pin"))
	if err != nil {
		return fmt.Errorf("open right encoder B pin: %w", err)
	}

	encCfg := encoder.DefaultConfig()
	encoders := encoder.Pair{
		Left:  encoder.New(leftEncA, leftEncB, encCfg),
		Right: encoder.New(rightEncA, rightEncB, encCfg),
	}

	deps := control.Collaborators{
		Encoders:  encoders,
		Gyro:      gz,
		Constants: constants,
		Profile:   constants,
		Driver:    driver,
		SideClose: wall.New(bus, 0x30, 80, 1),
		SideFar:   wall.New(bus, 0x31, 120, 1),
		Front:     wall.New(bus, 0x32, 60, 1),
		Diagonal:  wall.New(bus, 0x33, 90, 1),
	}

	params := control.Params{
		FTickHz:                        float32(c.Float64("tick-hz")),
		DriverPWMPeriod:                int32(c.Int64("pwm-period")),
		MaxMotorDriverSaturationPeriod: float32(c.Float64("saturation-period")),
	}
	state := control.New(params, deps)
	state.EnableMotorControl()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Info().Float64("tick_hz", c.Float64("tick-hz")).Msg("starting control loop")
	return tickLoop(ctx, state, encoders, params)
}

// tickLoop drives ControlState.Tick at the configured frequency until ctx
// is cancelled, following the signal.NotifyContext shutdown pattern used
// by cmd/spectrometer/main.go. Since this platform has no quadrature
// interrupt wiring, both wheel encoders are sampled once per tick rather
// than on every A/B edge; at F_TICK this still resolves direction
// correctly as long as no more than one quadrature transition occurs per
// tick, true for the encoder/wheel ratios this vehicle uses.
func tickLoop(ctx context.Context, state *control.ControlState, encoders encoder.Pair, params control.Params) error {
	period := time.Duration(float64(time.Second) / float64(params.FTickHz))
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			state.ResetMotion()
			return nil
		case <-ticker.C:
			encoders.Left.Sample()
			encoders.Right.Sample()
			state.Tick()
		}
	}
}
