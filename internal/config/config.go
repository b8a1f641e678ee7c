// Package config handles application configuration and setup
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/chip8emu/internal/audio"
	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/chip8emu/internal/frontend/headless"
	"github.com/retroenv/chip8emu/internal/frontend/terminal"
	"github.com/retroenv/chip8emu/internal/frontend/window"
	"github.com/retroenv/chip8emu/internal/machine"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnsupportedFrontend is returned for an unknown frontend name.
var ErrUnsupportedFrontend = errors.New("unsupported frontend")

// Defaults of the presentation options.
const (
	DefaultScale    = 10
	DefaultFrontend = frontend.Auto
	WindowTitle     = "CHIP-8"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateFrontend creates the frontend with the given name.
func CreateFrontend(logger *log.Logger, name string, scale int) (frontend.Frontend, error) {
	switch name {
	case frontend.Window:
		return window.New(logger, WindowTitle, machine.ScreenWidth, machine.ScreenHeight, scale), nil
	case frontend.Terminal:
		return terminal.New(logger, os.Stdin, os.Stdout, machine.ScreenWidth, machine.ScreenHeight), nil
	case frontend.Headless:
		return headless.New(logger, 0), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFrontend, name)
	}
}

// CreateBeeper creates the audio output for the sound cue. Without audio
// device or with an undecodable sample file the cue is silent.
func CreateBeeper(logger *log.Logger, opts options.Program, frontendName string) audio.Beeper {
	if opts.Mute || frontendName == frontend.Headless {
		return audio.Silent{}
	}

	sample := audio.Synthesize(audio.DefaultRate, audio.DefaultFrequency, audio.DefaultDuration)
	if opts.Beep != "" {
		loaded, err := audio.LoadSample(opts.Beep)
		if err != nil {
			logger.Warn("Loading beep sample failed, using synthesized tone",
				log.String("file", opts.Beep),
				log.Err(err))
		} else {
			sample = loaded
		}
	}

	logger.Debug("Beep sample",
		log.Int("rate", sample.Rate),
		log.String("duration", sample.Duration().String()))

	player, err := audio.NewOtoPlayer(sample)
	if err != nil {
		logger.Warn("Audio output not available", log.Err(err))
		return audio.Silent{}
	}
	return player
}
