// Package driver runs the emulation loop that connects the machine with a
// frontend and the audio output.
package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/retroenv/chip8emu/internal/audio"
	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/chip8emu/internal/machine"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Config contains the collaborators of a driver.
type Config struct {
	Machine   *machine.Machine
	Frontend  frontend.Frontend
	Beeper    audio.Beeper
	Clock     machine.Clock // wall clock if nil
	ROM       []byte
	KeepClock bool // keep an adjusted clock rate across resets
}

// Driver orchestrates the emulation loop.
type Driver struct {
	logger    *log.Logger
	machine   *machine.Machine
	frontend  frontend.Frontend
	beeper    audio.Beeper
	clock     machine.Clock
	rom       []byte
	keepClock bool
	clockRate int // rate that a reset restores
}

// New creates a new driver. The machine clock rate at this point is the rate
// that resets restore unless the adjusted rate is kept.
func New(logger *log.Logger, cfg Config) *Driver {
	clock := cfg.Clock
	if clock == nil {
		clock = machine.SystemClock{}
	}
	beeper := cfg.Beeper
	if beeper == nil {
		beeper = audio.Silent{}
	}

	return &Driver{
		logger:    logger,
		machine:   cfg.Machine,
		frontend:  cfg.Frontend,
		beeper:    beeper,
		clock:     clock,
		rom:       cfg.ROM,
		keepClock: cfg.KeepClock,
		clockRate: cfg.Machine.ClockRate(),
	}
}

// Run loads the ROM and runs the emulation loop on the thread that the
// frontend provides. It returns nil when the user quits or the context is
// cancelled, and an error wrapping machine.ErrHalted when the machine halts.
func (d *Driver) Run(ctx context.Context) error {
	if err := d.machine.LoadROM(d.rom); err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	d.logger.Info("Starting emulation",
		log.Stringer("system", arch.CHIP8System),
		log.Int("rom_size", len(d.rom)),
		log.Int("clock", d.machine.ClockRate()),
		log.String("mode", modeName(d.machine.State().Quirks)))

	if err := d.frontend.Run(ctx, d.loop); err != nil {
		if errors.Is(err, machine.ErrHalted) {
			d.logger.Error("Machine halted",
				log.Err(err),
				log.Hex("pc", d.machine.State().PC))
		}
		return err
	}
	return nil
}

func (d *Driver) loop(ctx context.Context) error {
	d.machine.Start(d.clock.Now())
	d.beeper.Beep()
	if err := d.present(); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			d.logger.Debug("Emulation cancelled")
			return nil
		}

		result, err := d.machine.Tick(d.clock.Now())
		if err != nil {
			return fmt.Errorf("executing instruction: %w", err)
		}
		if result.Beep {
			d.beeper.Beep()
		}

		if d.machine.TakeDrawPending() {
			if err := d.present(); err != nil {
				return err
			}
		}

		keys, cmd := d.frontend.Poll()
		d.machine.SetKeys(keys)

		quit, err := d.handleCommand(cmd)
		if err != nil {
			return err
		}
		if quit {
			d.logger.Debug("Emulation stopped by user")
			return nil
		}
	}
}

// handleCommand processes an auxiliary command and returns whether the loop
// should stop.
func (d *Driver) handleCommand(cmd frontend.Command) (bool, error) {
	switch cmd {
	case frontend.CommandNone:
		return false, nil

	case frontend.CommandQuit:
		return true, nil

	case frontend.CommandReset:
		return false, d.reset()

	case frontend.CommandSpeedUp:
		d.machine.SetClockRate(d.machine.ClockRate() + machine.ClockRateStep)
		return false, nil

	case frontend.CommandSpeedDown:
		d.machine.SetClockRate(d.machine.ClockRate() - machine.ClockRateStep)
		return false, nil

	default:
		d.logger.Warn("Unsupported command", log.Stringer("command", cmd))
		return false, nil
	}
}

// reset re-initializes the machine, reloads the ROM and presents the cleared frame.
func (d *Driver) reset() error {
	clockRate := d.clockRate
	if d.keepClock {
		clockRate = d.machine.ClockRate()
	}

	d.machine.Reset(d.clock.Now())
	if err := d.machine.LoadROM(d.rom); err != nil {
		return fmt.Errorf("reloading ROM: %w", err)
	}
	d.machine.SetClockRate(clockRate)
	d.logger.Info("Machine reset", log.Int("clock", clockRate))

	d.beeper.Beep()
	return d.present()
}

func (d *Driver) present() error {
	if err := d.frontend.Present(d.machine.Frame(), d.machine.Status()); err != nil {
		return fmt.Errorf("presenting frame: %w", err)
	}
	return nil
}

func modeName(quirks bool) string {
	if quirks {
		return "quirks"
	}
	return "standard"
}
