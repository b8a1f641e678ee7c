// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string `arg:"positional" usage:"CHIP-8 ROM file"`
	Output string `flag:"o" usage:"output file of the disassembly listing (default: stdout)"`
	Beep   string `flag:"beep" usage:".wav or .mp3 sample for the sound cue"`
}

// Flags contains behavior options.
type Flags struct {
	Quirks    bool   `flag:"quirks" usage:"legacy shift and register transfer behaviour"`
	ClockRate int    `flag:"clock" usage:"instruction rate in Hz" default:"500"`
	Frontend  string `flag:"frontend" usage:"frontend: auto, window, terminal, headless" default:"auto"`
	Scale     int    `flag:"scale" usage:"window scale factor" default:"10"`
	Mute      bool   `flag:"mute" usage:"disable audio output"`
	KeepClock bool   `flag:"keep-clock" usage:"keep the adjusted clock rate across resets"`
	StatsView bool   `flag:"statsview" usage:"launch the runtime stats server"`
	Trace     bool   `flag:"trace" usage:"log every executed instruction"`
	Debug     bool   `flag:"debug" usage:"enable debug logging"`
	Quiet     bool   `flag:"q" usage:"quiet mode"`
}

// Disasm contains options of the disassembly listing mode.
type Disasm struct {
	Enabled bool `flag:"disasm" usage:"print a disassembly listing of the ROM and exit"`
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Disasm
}
