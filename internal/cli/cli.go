// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/chip8emu/internal/config"
	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/chip8emu/internal/machine"
	"github.com/retroenv/chip8emu/internal/options"
)

// quirksArgument is the legacy second positional argument that enables quirk mode.
const quirksArgument = "1"

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	return parseArgs(os.Args[0], os.Args[1:])
}

func parseArgs(name string, arguments []string) (options.Program, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(arguments)
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(flags, args); err != nil {
		return opts, err
	}
	opts.Input = args[0]
	if len(args) > 1 {
		opts.Quirks = true
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: chip8emu [options] <rom file> [1]\n\n")
	e.flags.PrintDefaults()
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(flags *flag.FlagSet, args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				flags: flags,
				msg:   fmt.Sprintf("Potential argument %s found after the ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}

	switch {
	case len(args) > 2:
		return &UsageError{flags: flags, msg: "too many arguments"}
	case len(args) == 2 && args[1] != quirksArgument:
		return &UsageError{
			flags: flags,
			msg:   fmt.Sprintf("unsupported argument %s, pass %s to enable quirk mode", args[1], quirksArgument),
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	if opts.ClockRate < machine.MinClockRate || opts.ClockRate > machine.MaxClockRate {
		return fmt.Errorf("unsupported clock rate: %d Hz. Valid range: %d-%d",
			opts.ClockRate, machine.MinClockRate, machine.MaxClockRate)
	}

	if opts.Scale < 1 {
		return fmt.Errorf("unsupported scale: %d", opts.Scale)
	}

	if opts.Trace {
		opts.Debug = true
	}

	opts.Frontend = strings.ToLower(opts.Frontend)
	if !slices.Contains(frontend.Names, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(frontend.Names, ", "))
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output file of the disassembly listing, printed on console if no name given")
	flags.StringVar(&opts.Beep, "beep", "", "name of a .wav or .mp3 file to play as sound cue, a tone is synthesized if no name given")
	flags.BoolVar(&opts.Quirks, "quirks", false, "enable the legacy shift and register transfer behaviour, same as passing 1 after the ROM file")
	flags.IntVar(&opts.ClockRate, "clock", machine.DefaultClockRate, "instruction rate in Hz")
	flags.StringVar(&opts.Frontend, "frontend", config.DefaultFrontend, "frontend to use (auto/window/terminal/headless)")
	flags.IntVar(&opts.Scale, "scale", config.DefaultScale, "scale factor of the window")
	flags.BoolVar(&opts.Mute, "mute", false, "disable the audio output")
	flags.BoolVar(&opts.KeepClock, "keep-clock", false, "keep an adjusted clock rate when the machine is reset")
	flags.BoolVar(&opts.StatsView, "statsview", false, "launch the runtime stats server on localhost:12600")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, enables debug logging")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Disasm.Enabled, "disasm", false, "print a disassembly listing of the ROM and exit")
}
