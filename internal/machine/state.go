package machine

// Machine dimensions and memory layout.
const (
	MemorySize    = 4096
	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	ScreenWidth     = 64
	ScreenHeight    = 32
	FramebufferSize = ScreenWidth * ScreenHeight

	// FontAddress is where the built-in glyph set is installed.
	FontAddress = 0x000

	// ProgramStart is the address ROM images are loaded to and where execution starts.
	ProgramStart = 0x200

	// MaxROMSize is the largest ROM image that fits between ProgramStart and the end of memory.
	MaxROMSize = MemorySize - ProgramStart
)

// Instruction rate limits in Hz.
const (
	DefaultClockRate = 500
	MinClockRate     = 10
	MaxClockRate     = 5000
	ClockRateStep    = 10
)

const (
	flagRegister    = 0xF
	instructionSize = 2
	addressMask     = MemorySize - 1
)

// State is the complete persistent state of the virtual machine.
// It is pure data: the Executor and the Scheduler are its only writers,
// apart from the key lines which are reported by the input collaborator.
type State struct {
	Memory [MemorySize]byte
	V      [RegisterCount]byte
	I      uint16
	PC     uint16

	Stack [StackSize]uint16
	SP    uint8 // number of occupied stack entries

	DelayTimer byte
	SoundTimer byte

	Framebuffer [FramebufferSize]byte // one cell per pixel, 0 or 1, row-major
	Keys        [KeyCount]bool

	WaitingForKey bool
	WaitRegister  uint8

	// Quirks selects the legacy shift and bulk transfer behaviour.
	Quirks bool

	ClockRate       int // configured instruction rate in Hz
	CyclesPerSecond int // achieved instruction rate during the last second
	Cycles          uint64

	DrawPending bool
	Halted      bool
}
