package machine

import "fmt"

func skipIf(s *State, condition bool) {
	if condition {
		s.PC += instructionSize
	}
}

// 0000 - no operation
func opNop(_ *Executor, _ *State, _ Opcode) (Signal, error) {
	return SignalNone, nil
}

// 00E0 - clear the framebuffer
func opClear(_ *Executor, s *State, _ Opcode) (Signal, error) {
	clear(s.Framebuffer[:])
	s.DrawPending = true
	return SignalDraw, nil
}

// 00EE - return from subroutine
func opReturn(_ *Executor, s *State, _ Opcode) (Signal, error) {
	if s.SP == 0 {
		return SignalNone, fmt.Errorf("%w: return at $%04X", ErrStackUnderflow, s.PC)
	}
	s.SP--
	s.PC = s.Stack[s.SP]
	return SignalNone, nil
}

// 1nnn - jump to nnn
func opJump(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.PC = op.NNN() - instructionSize
	return SignalNone, nil
}

// 2nnn - call subroutine at nnn
func opCall(_ *Executor, s *State, op Opcode) (Signal, error) {
	if int(s.SP) >= StackSize {
		return SignalNone, fmt.Errorf("%w: call at $%04X", ErrStackOverflow, s.PC)
	}
	s.Stack[s.SP] = s.PC
	s.SP++
	s.PC = op.NNN() - instructionSize
	return SignalNone, nil
}

// 3xkk - skip if Vx == kk
func opSkipEqualImmediate(_ *Executor, s *State, op Opcode) (Signal, error) {
	skipIf(s, s.V[op.X()] == op.KK())
	return SignalNone, nil
}

// 4xkk - skip if Vx != kk
func opSkipNotEqualImmediate(_ *Executor, s *State, op Opcode) (Signal, error) {
	skipIf(s, s.V[op.X()] != op.KK())
	return SignalNone, nil
}

// 5xy0 - skip if Vx == Vy
func opSkipEqualRegister(_ *Executor, s *State, op Opcode) (Signal, error) {
	skipIf(s, s.V[op.X()] == s.V[op.Y()])
	return SignalNone, nil
}

// 9xy0 - skip if Vx != Vy
func opSkipNotEqualRegister(_ *Executor, s *State, op Opcode) (Signal, error) {
	skipIf(s, s.V[op.X()] != s.V[op.Y()])
	return SignalNone, nil
}

// 6xkk - Vx = kk
func opLoadImmediate(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.V[op.X()] = op.KK()
	return SignalNone, nil
}

// 7xkk - Vx += kk, no carry
func opAddImmediate(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.V[op.X()] += op.KK()
	return SignalNone, nil
}

// 8xy0 - Vx = Vy
func opAssign(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.V[op.X()] = s.V[op.Y()]
	return SignalNone, nil
}

// 8xy1 - Vx |= Vy
func opOr(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.V[op.X()] |= s.V[op.Y()]
	return SignalNone, nil
}

// 8xy2 - Vx &= Vy
func opAnd(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.V[op.X()] &= s.V[op.Y()]
	return SignalNone, nil
}

// 8xy3 - Vx ^= Vy
func opXor(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.V[op.X()] ^= s.V[op.Y()]
	return SignalNone, nil
}

// The flag register is written after the result in all flag producing
// operations, so VF as destination holds the flag afterwards.

// 8xy4 - Vx += Vy, VF = carry
func opAdd(_ *Executor, s *State, op Opcode) (Signal, error) {
	sum := uint16(s.V[op.X()]) + uint16(s.V[op.Y()])
	s.V[op.X()] = byte(sum)
	s.V[flagRegister] = boolToByte(sum > 0xFF)
	return SignalNone, nil
}

// 8xy5 - Vx -= Vy, VF = not borrow
func opSub(_ *Executor, s *State, op Opcode) (Signal, error) {
	x, y := s.V[op.X()], s.V[op.Y()]
	s.V[op.X()] = x - y
	s.V[flagRegister] = boolToByte(x > y)
	return SignalNone, nil
}

// 8xy7 - Vx = Vy - Vx, VF = not borrow
func opSubN(_ *Executor, s *State, op Opcode) (Signal, error) {
	x, y := s.V[op.X()], s.V[op.Y()]
	s.V[op.X()] = y - x
	s.V[flagRegister] = boolToByte(y > x)
	return SignalNone, nil
}

// 8xy6 - shift right. In quirk mode Vx is shifted in place, otherwise Vy is
// shifted in place and copied to Vx.
func opShiftRight(_ *Executor, s *State, op Opcode) (Signal, error) {
	src := shiftSource(s, op)
	result := s.V[src] >> 1
	flag := s.V[src] & 0x01
	s.V[src] = result
	s.V[op.X()] = result
	s.V[flagRegister] = flag
	return SignalNone, nil
}

// 8xyE - shift left, register selection as for 8xy6
func opShiftLeft(_ *Executor, s *State, op Opcode) (Signal, error) {
	src := shiftSource(s, op)
	result := s.V[src] << 1
	flag := s.V[src] >> 7
	s.V[src] = result
	s.V[op.X()] = result
	s.V[flagRegister] = flag
	return SignalNone, nil
}

func shiftSource(s *State, op Opcode) uint8 {
	if s.Quirks {
		return op.X()
	}
	return op.Y()
}

// Annn - I = nnn
func opSetIndex(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.I = op.NNN()
	return SignalNone, nil
}

// Bnnn - jump to nnn + V0
func opJumpOffset(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.PC = op.NNN() + uint16(s.V[0]) - instructionSize
	return SignalNone, nil
}

// Cxkk - Vx = random byte AND kk
func opRandom(e *Executor, s *State, op Opcode) (Signal, error) {
	s.V[op.X()] = e.random() & op.KK()
	return SignalNone, nil
}

// Dxyn - draw n rows sprite from I at (Vx, Vy), VF = collision
func opDraw(_ *Executor, s *State, op Opcode) (Signal, error) {
	DrawSprite(s, s.V[op.X()], s.V[op.Y()], op.N())
	s.DrawPending = true
	return SignalDraw, nil
}

// Ex9E - skip if key Vx is pressed
func opSkipKeyPressed(_ *Executor, s *State, op Opcode) (Signal, error) {
	skipIf(s, s.Keys[s.V[op.X()]&0x0F])
	return SignalNone, nil
}

// ExA1 - skip if key Vx is not pressed
func opSkipKeyReleased(_ *Executor, s *State, op Opcode) (Signal, error) {
	skipIf(s, !s.Keys[s.V[op.X()]&0x0F])
	return SignalNone, nil
}

// Fx07 - Vx = delay timer
func opLoadDelay(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.V[op.X()] = s.DelayTimer
	return SignalNone, nil
}

// Fx0A - wait for a key press and store it in Vx
func opWaitKey(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.WaitingForKey = true
	s.WaitRegister = op.X()
	return SignalWait, nil
}

// Fx15 - delay timer = Vx
func opSetDelay(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.DelayTimer = s.V[op.X()]
	return SignalNone, nil
}

// Fx18 - sound timer = Vx
func opSetSound(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.SoundTimer = s.V[op.X()]
	return SignalNone, nil
}

// Fx1E - I += Vx
func opAddIndex(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.I += uint16(s.V[op.X()])
	return SignalNone, nil
}

// Fx29 - I = address of the glyph for the low nibble of Vx
func opFontAddress(_ *Executor, s *State, op Opcode) (Signal, error) {
	s.I = FontAddress + uint16(s.V[op.X()]&0x0F)*glyphSize
	return SignalNone, nil
}

// Fx33 - store the decimal digits of Vx at I, I+1 and I+2
func opStoreBCD(_ *Executor, s *State, op Opcode) (Signal, error) {
	hundreds, tens, ones := bcd(s.V[op.X()])
	s.Memory[s.I&addressMask] = hundreds
	s.Memory[(s.I+1)&addressMask] = tens
	s.Memory[(s.I+2)&addressMask] = ones
	return SignalNone, nil
}

// Fx55 - store V0..Vx at I, without quirks I advances by x+1
func opStoreRegisters(_ *Executor, s *State, op Opcode) (Signal, error) {
	x := uint16(op.X())
	for i := uint16(0); i <= x; i++ {
		s.Memory[(s.I+i)&addressMask] = s.V[i]
	}
	if !s.Quirks {
		s.I += x + 1
	}
	return SignalNone, nil
}

// Fx65 - load V0..Vx from I, without quirks I advances by x+1
func opLoadRegisters(_ *Executor, s *State, op Opcode) (Signal, error) {
	x := uint16(op.X())
	for i := uint16(0); i <= x; i++ {
		s.V[i] = s.Memory[(s.I+i)&addressMask]
	}
	if !s.Quirks {
		s.I += x + 1
	}
	return SignalNone, nil
}

// bcd splits a byte into its hundreds, tens and ones digits.
func bcd(value byte) (byte, byte, byte) {
	return value / 100, value / 10 % 10, value % 10
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
