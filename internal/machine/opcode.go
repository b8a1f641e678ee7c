package machine

import "fmt"

// Opcode is a 16 bit big-endian instruction word.
type Opcode uint16

// Family returns the leading nibble that selects the instruction family.
func (o Opcode) Family() uint8 {
	return uint8(o >> 12)
}

// X returns the first register index from bits 8-11.
func (o Opcode) X() uint8 {
	return uint8(o>>8) & 0x0F
}

// Y returns the second register index from bits 4-7.
func (o Opcode) Y() uint8 {
	return uint8(o>>4) & 0x0F
}

// N returns the lowest nibble.
func (o Opcode) N() uint8 {
	return uint8(o) & 0x0F
}

// KK returns the immediate byte.
func (o Opcode) KK() byte {
	return byte(o)
}

// NNN returns the 12 bit address.
func (o Opcode) NNN() uint16 {
	return uint16(o) & 0x0FFF
}

func (o Opcode) String() string {
	return fmt.Sprintf("%04X", uint16(o))
}

// fetch reads the instruction word at the program counter.
func fetch(s *State) Opcode {
	return Opcode(uint16(s.Memory[s.PC])<<8 | uint16(s.Memory[s.PC+1]))
}
