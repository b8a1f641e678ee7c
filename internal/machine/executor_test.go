package machine

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestState returns an initialized state with the given instruction words
// stored at ProgramStart.
func newTestState(quirks bool, program ...uint16) *State {
	s := Initialize(quirks)
	for i, word := range program {
		s.Memory[ProgramStart+2*i] = byte(word >> 8)
		s.Memory[ProgramStart+2*i+1] = byte(word)
	}
	return s
}

func newTestExecutor(t *testing.T) *Executor {
	t.Helper()
	return NewExecutor(log.NewTestLogger(t), func() byte { return 0xA5 }, true)
}

func execute(t *testing.T, e *Executor, s *State, count int) {
	t.Helper()
	for range count {
		_, err := e.Execute(s)
		assert.NoError(t, err)
	}
}

func TestExecuteAdvancesProgramCounter(t *testing.T) {
	e := newTestExecutor(t)
	s := newTestState(false, 0x6A05, 0x7A10)

	execute(t, e, s, 2)
	assert.Equal(t, byte(0x15), s.V[0xA])
	assert.Equal(t, uint16(ProgramStart+4), s.PC)
	assert.Equal(t, uint64(2), s.Cycles)
}

func TestExecuteProgramCounterBounds(t *testing.T) {
	e := newTestExecutor(t)

	t.Run("last valid word", func(t *testing.T) {
		s := newTestState(false)
		s.PC = MemorySize - 2
		s.Memory[MemorySize-2] = 0x61
		s.Memory[MemorySize-1] = 0x42

		_, err := e.Execute(s)
		assert.NoError(t, err)
		assert.Equal(t, byte(0x42), s.V[1])
		assert.False(t, s.Halted)
	})

	t.Run("outside of memory", func(t *testing.T) {
		s := newTestState(false)
		s.PC = MemorySize - 1
		s.Memory[MemorySize-1] = 0x61
		registers := s.V

		signal, err := e.Execute(s)
		assert.True(t, errors.Is(err, ErrPCOutOfBounds))
		assert.True(t, errors.Is(err, ErrHalted))
		assert.Equal(t, SignalFault, signal)
		assert.True(t, s.Halted)
		assert.Equal(t, registers, s.V)
		assert.Equal(t, uint16(MemorySize-1), s.PC)

		_, err = e.Execute(s)
		assert.True(t, errors.Is(err, ErrHalted))
	})
}

func TestExecuteIllegalOpcode(t *testing.T) {
	e := newTestExecutor(t)

	opcodes := []uint16{0x0123, 0x5121, 0x800F, 0x9AB1, 0xE19F, 0xF0FF}
	for _, op := range opcodes {
		t.Run(Opcode(op).String(), func(t *testing.T) {
			s := newTestState(false, op)
			registers := s.V

			signal, err := e.Execute(s)
			assert.NoError(t, err)
			assert.Equal(t, SignalNone, signal)
			assert.Equal(t, uint16(ProgramStart+2), s.PC)
			assert.Equal(t, registers, s.V)
			assert.False(t, s.Halted)
		})
	}
}

func TestExecuteJumps(t *testing.T) {
	e := newTestExecutor(t)

	t.Run("jump", func(t *testing.T) {
		s := newTestState(false, 0x1ABC)
		execute(t, e, s, 1)
		assert.Equal(t, uint16(0xABC), s.PC)
	})

	t.Run("jump with offset", func(t *testing.T) {
		s := newTestState(false, 0x6010, 0xB300)
		execute(t, e, s, 2)
		assert.Equal(t, uint16(0x310), s.PC)
	})

	t.Run("call and return", func(t *testing.T) {
		s := newTestState(false, 0x2300)
		s.Memory[0x300] = 0x00
		s.Memory[0x301] = 0xEE

		execute(t, e, s, 1)
		assert.Equal(t, uint16(0x300), s.PC)
		assert.Equal(t, uint8(1), s.SP)
		assert.Equal(t, uint16(ProgramStart), s.Stack[0])

		execute(t, e, s, 1)
		assert.Equal(t, uint16(ProgramStart+2), s.PC)
		assert.Equal(t, uint8(0), s.SP)
	})
}

func TestExecuteStackBounds(t *testing.T) {
	e := newTestExecutor(t)

	t.Run("overflow", func(t *testing.T) {
		// calls itself until the stack is full
		s := newTestState(false, 0x2200)
		execute(t, e, s, StackSize)
		assert.Equal(t, uint8(StackSize), s.SP)

		signal, err := e.Execute(s)
		assert.True(t, errors.Is(err, ErrStackOverflow))
		assert.True(t, errors.Is(err, ErrHalted))
		assert.Equal(t, SignalFault, signal)
		assert.True(t, s.Halted)
	})

	t.Run("underflow", func(t *testing.T) {
		s := newTestState(false, 0x00EE)

		_, err := e.Execute(s)
		assert.True(t, errors.Is(err, ErrStackUnderflow))
		assert.True(t, s.Halted)
	})
}

func TestExecuteSkips(t *testing.T) {
	e := newTestExecutor(t)

	tests := []struct {
		name    string
		setup   func(s *State)
		op      uint16
		skipped bool
	}{
		{"SE immediate equal", func(s *State) { s.V[1] = 0x42 }, 0x3142, true},
		{"SE immediate different", func(s *State) { s.V[1] = 0x41 }, 0x3142, false},
		{"SNE immediate equal", func(s *State) { s.V[1] = 0x42 }, 0x4142, false},
		{"SNE immediate different", func(s *State) { s.V[1] = 0x41 }, 0x4142, true},
		{"SE register equal", func(s *State) { s.V[1], s.V[2] = 7, 7 }, 0x5120, true},
		{"SE register different", func(s *State) { s.V[1], s.V[2] = 7, 8 }, 0x5120, false},
		{"SNE register equal", func(s *State) { s.V[1], s.V[2] = 7, 7 }, 0x9120, false},
		{"SNE register different", func(s *State) { s.V[1], s.V[2] = 7, 8 }, 0x9120, true},
		{"SKP pressed", func(s *State) { s.V[3], s.Keys[0xB] = 0xB, true }, 0xE39E, true},
		{"SKP released", func(s *State) { s.V[3] = 0xB }, 0xE39E, false},
		{"SKP uses low nibble", func(s *State) { s.V[3], s.Keys[0xB] = 0xFB, true }, 0xE39E, true},
		{"SKNP pressed", func(s *State) { s.V[3], s.Keys[0xB] = 0xB, true }, 0xE3A1, false},
		{"SKNP released", func(s *State) { s.V[3] = 0xB }, 0xE3A1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(false, tt.op)
			tt.setup(s)
			execute(t, e, s, 1)

			expected := uint16(ProgramStart + 2)
			if tt.skipped {
				expected += 2
			}
			assert.Equal(t, expected, s.PC)
		})
	}
}

func TestExecuteArithmetic(t *testing.T) {
	e := newTestExecutor(t)

	tests := []struct {
		name   string
		op     uint16
		x, y   byte
		result byte
		flag   byte
	}{
		{"ADD without carry", 0x8124, 0x10, 0x20, 0x30, 0},
		{"ADD with carry", 0x8124, 0xF0, 0x20, 0x10, 1},
		{"ADD to 0xFF", 0x8124, 0xFF, 0x00, 0xFF, 0},
		{"ADD wraps to zero", 0x8124, 0xFF, 0x01, 0x00, 1},
		{"SUB without borrow", 0x8125, 0x30, 0x10, 0x20, 1},
		{"SUB with borrow", 0x8125, 0x10, 0x30, 0xE0, 0},
		{"SUB equal operands", 0x8125, 0x10, 0x10, 0x00, 0},
		{"SUBN without borrow", 0x8127, 0x10, 0x30, 0x20, 1},
		{"SUBN with borrow", 0x8127, 0x30, 0x10, 0xE0, 0},
		{"SUBN equal operands", 0x8127, 0x10, 0x10, 0x00, 0},
		{"OR", 0x8121, 0xF0, 0x0F, 0xFF, 0xAA},
		{"AND", 0x8122, 0xF0, 0x3C, 0x30, 0xAA},
		{"XOR", 0x8123, 0xF0, 0x3C, 0xCC, 0xAA},
		{"assign", 0x8120, 0xF0, 0x3C, 0x3C, 0xAA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(false, tt.op)
			s.V[1], s.V[2] = tt.x, tt.y
			s.V[flagRegister] = 0xAA
			execute(t, e, s, 1)

			assert.Equal(t, tt.result, s.V[1])
			assert.Equal(t, tt.flag, s.V[flagRegister])
		})
	}
}

func TestExecuteFlagRegisterAsDestination(t *testing.T) {
	e := newTestExecutor(t)

	s := newTestState(false, 0x8F14)
	s.V[0xF], s.V[1] = 0xF0, 0x20
	execute(t, e, s, 1)
	assert.Equal(t, byte(1), s.V[0xF])
}

func TestExecuteShifts(t *testing.T) {
	e := newTestExecutor(t)

	tests := []struct {
		name   string
		quirks bool
		op     uint16
		value  byte
		result byte
		flag   byte
	}{
		{"SHR 0x01", false, 0x8126, 0x01, 0x00, 1},
		{"SHR 0x80", false, 0x8126, 0x80, 0x40, 0},
		{"SHR 0xFF", false, 0x8126, 0xFF, 0x7F, 1},
		{"SHL 0x01", false, 0x812E, 0x01, 0x02, 0},
		{"SHL 0x80", false, 0x812E, 0x80, 0x00, 1},
		{"SHL 0xFF", false, 0x812E, 0xFF, 0xFE, 1},
		{"quirks SHR 0x01", true, 0x8126, 0x01, 0x00, 1},
		{"quirks SHR 0x80", true, 0x8126, 0x80, 0x40, 0},
		{"quirks SHR 0xFF", true, 0x8126, 0xFF, 0x7F, 1},
		{"quirks SHL 0x01", true, 0x812E, 0x01, 0x02, 0},
		{"quirks SHL 0x80", true, 0x812E, 0x80, 0x00, 1},
		{"quirks SHL 0xFF", true, 0x812E, 0xFF, 0xFE, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(tt.quirks, tt.op)
			if tt.quirks {
				s.V[1], s.V[2] = tt.value, 0x5A
			} else {
				s.V[1], s.V[2] = 0x5A, tt.value
			}
			execute(t, e, s, 1)

			assert.Equal(t, tt.result, s.V[1])
			assert.Equal(t, tt.flag, s.V[flagRegister])
			if tt.quirks {
				assert.Equal(t, byte(0x5A), s.V[2])
			} else {
				assert.Equal(t, tt.result, s.V[2])
			}
		})
	}
}

func TestExecuteImmediates(t *testing.T) {
	e := newTestExecutor(t)

	s := newTestState(false, 0x63FF, 0x7302, 0xA123, 0xC30F)
	execute(t, e, s, 2)
	assert.Equal(t, byte(0x01), s.V[3])
	assert.Equal(t, byte(0), s.V[flagRegister])

	execute(t, e, s, 2)
	assert.Equal(t, uint16(0x123), s.I)
	assert.Equal(t, byte(0x05), s.V[3])
}

func TestExecuteTimersAndIndex(t *testing.T) {
	e := newTestExecutor(t)

	s := newTestState(false, 0xF415, 0xF418, 0xF507, 0xF41E)
	s.V[4] = 0x30
	s.I = 0x100

	execute(t, e, s, 3)
	assert.Equal(t, byte(0x30), s.DelayTimer)
	assert.Equal(t, byte(0x30), s.SoundTimer)
	assert.Equal(t, byte(0x30), s.V[5])

	execute(t, e, s, 1)
	assert.Equal(t, uint16(0x130), s.I)
}

func TestExecuteFontAddress(t *testing.T) {
	e := newTestExecutor(t)

	s := newTestState(false, 0xF229)
	s.V[2] = 0x1A
	execute(t, e, s, 1)
	assert.Equal(t, uint16(FontAddress+0xA*glyphSize), s.I)
	assert.Equal(t, byte(0xF0), s.Memory[s.I])
}

func TestExecuteStoreBCD(t *testing.T) {
	e := newTestExecutor(t)

	tests := []struct {
		value  byte
		digits [3]byte
	}{
		{0, [3]byte{0, 0, 0}},
		{9, [3]byte{0, 0, 9}},
		{10, [3]byte{0, 1, 0}},
		{99, [3]byte{0, 9, 9}},
		{100, [3]byte{1, 0, 0}},
		{255, [3]byte{2, 5, 5}},
	}

	for _, tt := range tests {
		s := newTestState(false, 0xF733)
		s.V[7] = tt.value
		s.I = 0x300
		execute(t, e, s, 1)

		assert.Equal(t, tt.digits[0], s.Memory[0x300])
		assert.Equal(t, tt.digits[1], s.Memory[0x301])
		assert.Equal(t, tt.digits[2], s.Memory[0x302])
		assert.Equal(t, uint16(0x300), s.I)
	}
}

func TestExecuteRegisterTransfer(t *testing.T) {
	e := newTestExecutor(t)

	tests := []struct {
		name      string
		quirks    bool
		storeNext uint16
		loadNext  uint16
	}{
		{"advances index", false, 0x304, 0x303},
		{"quirks keep index", true, 0x300, 0x300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestState(tt.quirks, 0xF355)
			s.V = [RegisterCount]byte{1, 2, 3, 4, 5}
			s.I = 0x300
			execute(t, e, s, 1)

			assert.Equal(t, []byte{1, 2, 3, 4, 0}, s.Memory[0x300:0x305])
			assert.Equal(t, tt.storeNext, s.I)

			s = newTestState(tt.quirks, 0xF265)
			copy(s.Memory[0x300:], []byte{9, 8, 7, 6})
			s.I = 0x300
			execute(t, e, s, 1)

			assert.Equal(t, [RegisterCount]byte{9, 8, 7}, s.V)
			assert.Equal(t, tt.loadNext, s.I)
		})
	}
}

func TestExecuteRegisterTransferWraps(t *testing.T) {
	e := newTestExecutor(t)

	s := newTestState(true, 0xF155)
	s.V[0], s.V[1] = 0x11, 0x22
	s.I = 0xFFF
	execute(t, e, s, 1)

	assert.Equal(t, byte(0x11), s.Memory[0xFFF])
	assert.Equal(t, byte(0x22), s.Memory[0x000])
}

func TestExecuteClearScreen(t *testing.T) {
	e := newTestExecutor(t)

	s := newTestState(false, 0x00E0)
	s.Framebuffer[100] = 1

	signal, err := e.Execute(s)
	assert.NoError(t, err)
	assert.Equal(t, SignalDraw, signal)
	assert.Equal(t, byte(0), s.Framebuffer[100])
	assert.True(t, s.DrawPending)
}

func TestExecuteWaitKey(t *testing.T) {
	e := newTestExecutor(t)

	s := newTestState(false, 0xF50A)
	signal, err := e.Execute(s)
	assert.NoError(t, err)
	assert.Equal(t, SignalWait, signal)
	assert.True(t, s.WaitingForKey)
	assert.Equal(t, uint8(5), s.WaitRegister)
}
