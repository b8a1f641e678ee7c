package machine

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/chip8emu/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

// Signal reports what an executed instruction requires from the caller.
type Signal uint8

const (
	SignalNone  Signal = iota
	SignalDraw         // the framebuffer changed and should be presented
	SignalWait         // the machine waits for a key press
	SignalFault        // the machine halted
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalDraw:
		return "draw"
	case SignalWait:
		return "wait"
	case SignalFault:
		return "fault"
	default:
		return fmt.Sprintf("signal(%d)", uint8(s))
	}
}

// handler executes a single decoded operation. Returning an error halts the machine.
type handler func(e *Executor, s *State, op Opcode) (Signal, error)

// family decodes all instructions that share a leading nibble. A family either
// consists of a single operation or selects one by a part of the opcode.
type family struct {
	run      handler
	selector func(Opcode) uint16
	ops      map[uint16]handler
}

func selectAddress(op Opcode) uint16 { return op.NNN() }
func selectNibble(op Opcode) uint16  { return uint16(op.N()) }
func selectByte(op Opcode) uint16    { return uint16(op.KK()) }

var families = [16]family{
	0x0: {selector: selectAddress, ops: map[uint16]handler{
		0x000: opNop,
		0x0E0: opClear,
		0x0EE: opReturn,
	}},
	0x1: {run: opJump},
	0x2: {run: opCall},
	0x3: {run: opSkipEqualImmediate},
	0x4: {run: opSkipNotEqualImmediate},
	0x5: {selector: selectNibble, ops: map[uint16]handler{
		0x0: opSkipEqualRegister,
	}},
	0x6: {run: opLoadImmediate},
	0x7: {run: opAddImmediate},
	0x8: {selector: selectNibble, ops: map[uint16]handler{
		0x0: opAssign,
		0x1: opOr,
		0x2: opAnd,
		0x3: opXor,
		0x4: opAdd,
		0x5: opSub,
		0x6: opShiftRight,
		0x7: opSubN,
		0xE: opShiftLeft,
	}},
	0x9: {selector: selectNibble, ops: map[uint16]handler{
		0x0: opSkipNotEqualRegister,
	}},
	0xA: {run: opSetIndex},
	0xB: {run: opJumpOffset},
	0xC: {run: opRandom},
	0xD: {run: opDraw},
	0xE: {selector: selectByte, ops: map[uint16]handler{
		0x9E: opSkipKeyPressed,
		0xA1: opSkipKeyReleased,
	}},
	0xF: {selector: selectByte, ops: map[uint16]handler{
		0x07: opLoadDelay,
		0x0A: opWaitKey,
		0x15: opSetDelay,
		0x18: opSetSound,
		0x1E: opAddIndex,
		0x29: opFontAddress,
		0x33: opStoreBCD,
		0x55: opStoreRegisters,
		0x65: opLoadRegisters,
	}},
}

// decode returns the handler for an opcode or nil if the encoding is unknown.
func decode(op Opcode) handler {
	f := families[op.Family()]
	if f.run != nil {
		return f.run
	}
	return f.ops[f.selector(op)]
}

// Executor fetches, decodes and executes single instructions.
type Executor struct {
	logger *log.Logger
	random func() byte
	trace  bool
}

// NewExecutor returns a new executor. A nil random source uses math/rand.
func NewExecutor(logger *log.Logger, random func() byte, trace bool) *Executor {
	if random == nil {
		random = func() byte {
			return byte(rand.UintN(256))
		}
	}
	return &Executor{
		logger: logger,
		random: random,
		trace:  trace,
	}
}

// Execute runs the instruction at the program counter and advances it.
func (e *Executor) Execute(s *State) (Signal, error) {
	if s.Halted {
		return SignalFault, ErrHalted
	}
	if int(s.PC) > MemorySize-instructionSize {
		s.Halted = true
		return SignalFault, fmt.Errorf("%w: $%04X", ErrPCOutOfBounds, s.PC)
	}

	op := fetch(s)
	h := decode(op)
	if h == nil {
		e.logger.Warn("Illegal opcode",
			log.Hex("pc", s.PC),
			log.Hex("opcode", uint16(op)))
		s.PC += instructionSize
		s.Cycles++
		return SignalNone, nil
	}

	if e.trace {
		e.logger.Debug("Execute",
			log.Hex("pc", s.PC),
			log.Hex("opcode", uint16(op)),
			log.String("instruction", disasm.Disassemble(uint16(op))),
			log.Hex("i", s.I),
			log.Uint8("sp", s.SP))
	}

	signal, err := h(e, s, op)
	if err != nil {
		s.Halted = true
		return SignalFault, err
	}
	s.PC += instructionSize
	s.Cycles++
	return signal, nil
}
