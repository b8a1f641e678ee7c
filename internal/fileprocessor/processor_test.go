package fileprocessor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/chip8emu/internal/loader"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestWriteListing(t *testing.T) {
	tmpDir := t.TempDir()
	input := filepath.Join(tmpDir, "pong.ch8")
	output := filepath.Join(tmpDir, "pong.asm")

	// cls, jp $202
	err := os.WriteFile(input, []byte{0x00, 0xE0, 0x12, 0x02}, 0600)
	assert.NoError(t, err)

	opts := options.Program{
		Parameters: options.Parameters{
			Input:  input,
			Output: output,
		},
	}
	err = WriteListing(log.NewTestLogger(t), opts)
	assert.NoError(t, err)

	data, err := os.ReadFile(output)
	assert.NoError(t, err)
	listing := string(data)
	assert.True(t, strings.HasPrefix(listing, "; CHIP-8 ROM Disassembly\n; Input: pong.ch8\n"))
	assert.Contains(t, listing, ".org $200")
	assert.Contains(t, listing, "_label_0202:")
}

func TestWriteListingErrors(t *testing.T) {
	tmpDir := t.TempDir()
	empty := filepath.Join(tmpDir, "empty.ch8")
	assert.NoError(t, os.WriteFile(empty, nil, 0600))
	valid := filepath.Join(tmpDir, "valid.ch8")
	assert.NoError(t, os.WriteFile(valid, []byte{0x00, 0xE0}, 0600))

	tests := []struct {
		name       string
		input      string
		output     string
		errContain string
	}{
		{
			name:       "missing input",
			input:      filepath.Join(tmpDir, "missing.ch8"),
			errContain: "loading ROM",
		},
		{
			name:       "empty input",
			input:      empty,
			errContain: loader.ErrEmptyROM.Error(),
		},
		{
			name:       "output directory missing",
			input:      valid,
			output:     filepath.Join(tmpDir, "missing", "out.asm"),
			errContain: "creating output file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{
					Input:  tt.input,
					Output: tt.output,
				},
			}
			err := WriteListing(log.NewTestLogger(t), opts)
			assert.ErrorContains(t, err, tt.errContain)
		})
	}
}

func TestPrintBanner(t *testing.T) {
	logger := log.NewTestLogger(t)

	PrintBanner(logger, options.Program{}, "1.0.0", "0123456789abcdef", "2026-01-01")
	PrintBanner(logger, options.Program{Flags: options.Flags{Quiet: true}}, "dev", "", "")
}
