package machine

import "fmt"

// Initialize returns a new state with cleared registers, memory, timers and
// framebuffer, the glyph set installed and the program counter at ProgramStart.
func Initialize(quirks bool) *State {
	s := &State{}
	s.initialize(quirks)
	return s
}

// Reset re-initializes the state using its configured quirk mode.
// The ROM image and a changed clock rate are not kept, callers reload
// the ROM and reapply the clock rate if they need to.
func (s *State) Reset() {
	s.initialize(s.Quirks)
}

func (s *State) initialize(quirks bool) {
	*s = State{
		PC:        ProgramStart,
		Quirks:    quirks,
		ClockRate: DefaultClockRate,
	}
	copy(s.Memory[FontAddress:], glyphs[:])
}

// LoadROM copies a ROM image verbatim to ProgramStart.
func (s *State) LoadROM(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(s.Memory[ProgramStart:], rom)
	return nil
}
