// Package disasm decodes CHIP-8 instruction words into assembly text.
// It is used for instruction tracing and for writing listings of ROM images.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// instructionSize is the size of CHIP-8 instructions in bytes.
const instructionSize = 2

// Lookup returns the instruction that the opcode table assigns to an
// instruction word.
func Lookup(op uint16) (*chip8.Instruction, bool) {
	for _, opcode := range chip8.Opcodes[int(op>>12)] {
		if opcode.Info.Mask&op == opcode.Info.Value {
			return opcode.Instruction, opcode.Instruction != nil
		}
	}
	return nil, false
}

// Disassemble returns the assembly text of an instruction word. Words that do
// not decode are returned as a data directive.
func Disassemble(op uint16) string {
	ins, ok := Lookup(op)
	if !ok {
		return dataDirective([]byte{byte(op >> 8), byte(op)})
	}
	if params := formatOperands(op); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// IsCall returns whether the word calls a subroutine at its address operand.
func IsCall(op uint16) bool {
	ins, ok := Lookup(op)
	return ok && ins == chip8.CallInst
}

// IsJump returns whether the word jumps to its absolute address operand.
// Jumps relative to V0 are not included as their target is not known statically.
func IsJump(op uint16) bool {
	ins, ok := Lookup(op)
	return ok && ins == chip8.JpInst && op&0xF000 == 0x1000
}
