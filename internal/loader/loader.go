// Package loader handles ROM file loading operations.
package loader

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/chip8emu/internal/machine"
	"github.com/retroenv/retrogolib/log"
)

// ErrEmptyROM is returned for ROM files without content.
var ErrEmptyROM = errors.New("ROM file is empty")

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads a raw ROM image and verifies that it fits into the memory
// behind the program start address.
func (l *Loader) Load(path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	// read one byte more than allowed to detect oversized images
	data, err := io.ReadAll(io.LimitReader(file, machine.MaxROMSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	switch {
	case len(data) == 0:
		return nil, fmt.Errorf("loading %s: %w", path, ErrEmptyROM)
	case len(data) > machine.MaxROMSize:
		return nil, fmt.Errorf("loading %s: %w: maximum is %d bytes", path, machine.ErrROMTooLarge, machine.MaxROMSize)
	}

	l.logger.Debug("Loaded ROM",
		log.String("file", path),
		log.Int("size", len(data)),
		log.Hex("address", uint16(machine.ProgramStart)))
	return data, nil
}
