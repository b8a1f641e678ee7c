package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"prog", "-clock", "700", "game.ch8"}

	opts, err := ParseFlags()
	assert.NoError(t, err)
	assert.Equal(t, "game.ch8", opts.Input)
	assert.Equal(t, 700, opts.ClockRate)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "defaults",
			args: []string{"game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.ch8"},
				Flags:      options.Flags{ClockRate: 500, Frontend: "auto", Scale: 10},
			},
		},
		{
			name: "legacy quirk argument",
			args: []string{"game.ch8", "1"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.ch8"},
				Flags:      options.Flags{Quirks: true, ClockRate: 500, Frontend: "auto", Scale: 10},
			},
		},
		{
			name: "flags",
			args: []string{"-quirks", "-clock", "1000", "-frontend", "Terminal", "-scale", "4",
				"-beep", "beep.wav", "-mute", "-keep-clock", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.ch8", Beep: "beep.wav"},
				Flags: options.Flags{Quirks: true, ClockRate: 1000, Frontend: "terminal", Scale: 4,
					Mute: true, KeepClock: true},
			},
		},
		{
			name: "trace enables debug",
			args: []string{"-trace", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.ch8"},
				Flags:      options.Flags{ClockRate: 500, Frontend: "auto", Scale: 10, Trace: true, Debug: true},
			},
		},
		{
			name: "disassembly listing",
			args: []string{"-disasm", "-o", "game.asm", "game.ch8"},
			want: options.Program{
				Parameters: options.Parameters{Input: "game.ch8", Output: "game.asm"},
				Flags:      options.Flags{ClockRate: 500, Frontend: "auto", Scale: 10},
				Disasm:     options.Disasm{Enabled: true},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseArgs("prog", tt.args)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{"no ROM file", nil, true},
		{"unknown flag", []string{"-unknown", "game.ch8"}, true},
		{"flag after ROM file", []string{"game.ch8", "-q"}, true},
		{"unsupported positional", []string{"game.ch8", "2"}, true},
		{"too many arguments", []string{"game.ch8", "1", "1"}, true},
		{"clock rate too low", []string{"-clock", "5", "game.ch8"}, false},
		{"clock rate too high", []string{"-clock", "5001", "game.ch8"}, false},
		{"invalid scale", []string{"-scale", "0", "game.ch8"}, false},
		{"unknown frontend", []string{"-frontend", "sdl", "game.ch8"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs("prog", tt.args)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}
