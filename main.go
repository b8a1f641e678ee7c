// Package main implements the main entry point for a CHIP-8 emulator
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8emu/internal/cli"
	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/detector"
	"github.com/retroenv/chip8emu/internal/driver"
	"github.com/retroenv/chip8emu/internal/fileprocessor"
	"github.com/retroenv/chip8emu/internal/loader"
	"github.com/retroenv/chip8emu/internal/machine"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/chip8emu/internal/statsview"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	if opts.Disasm.Enabled {
		if err := fileprocessor.WriteListing(logger, opts); err != nil {
			logger.Fatal("Disassembling failed", log.Err(err))
		}
		return
	}

	if err := run(ctx, logger, opts); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	startStatsView(logger, opts.StatsView)

	rom, err := loader.New(logger).Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	m := machine.New(logger, machine.Config{
		Quirks: opts.Quirks,
		Trace:  opts.Trace,
	})
	m.SetClockRate(opts.ClockRate)

	name := detector.New(logger).Detect(opts)
	fe, err := config.CreateFrontend(logger, name, opts.Scale)
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}
	defer closeWithLog(logger, "frontend", fe)

	beeper := config.CreateBeeper(logger, opts, name)
	defer closeWithLog(logger, "audio", beeper)

	d := driver.New(logger, driver.Config{
		Machine:   m,
		Frontend:  fe,
		Beeper:    beeper,
		ROM:       rom,
		KeepClock: opts.KeepClock,
	})
	if err := d.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// startStatsView launches the stats server if requested and returns whether
// it is running.
func startStatsView(logger *log.Logger, enabled bool) bool {
	if !enabled {
		return false
	}
	if !statsview.Available() {
		logger.Warn("Stats server not available, rebuild with the statsview build tag")
		return false
	}
	statsview.Launch(logger)
	return true
}

func closeWithLog(logger *log.Logger, name string, closer io.Closer) {
	if err := closer.Close(); err != nil {
		logger.Error("Closing failed", log.String("component", name), log.Err(err))
	}
}
