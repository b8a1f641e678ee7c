package disasm

import (
	"fmt"
	"strings"
)

// formatOperands formats the parameters of an instruction word.
func formatOperands(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x0000:
		return formatSystemInstruction(opcode)
	case 0x1000, 0x2000:
		return formatAddress(opcode)
	case 0x3000, 0x4000, 0x6000, 0x7000, 0xC000:
		return fmt.Sprintf("V%X, $%02X", extractRegisterX(opcode), opcode&0x00FF)
	case 0x5000, 0x8000, 0x9000:
		return fmt.Sprintf("V%X, V%X", extractRegisterX(opcode), extractRegisterY(opcode))
	case 0xA000:
		return "I, " + formatAddress(opcode)
	case 0xB000:
		return "V0, " + formatAddress(opcode)
	case 0xD000:
		return fmt.Sprintf("V%X, V%X, $%X", extractRegisterX(opcode), extractRegisterY(opcode), opcode&0x000F)
	case 0xE000:
		return fmt.Sprintf("V%X", extractRegisterX(opcode))
	case 0xF000:
		return formatMiscInstruction(opcode)
	}
	return ""
}

// formatSystemInstruction formats CLS, RET and machine code calls.
func formatSystemInstruction(opcode uint16) string {
	switch opcode {
	case 0x00E0, 0x00EE:
		return ""
	}
	return formatAddress(opcode)
}

// formatMiscInstruction formats the timer, key, index and memory transfer
// instructions of the F family.
func formatMiscInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x1E:
		return fmt.Sprintf("I, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}

func formatAddress(opcode uint16) string {
	return fmt.Sprintf("$%03X", opcode&0x0FFF)
}

// dataDirective formats raw bytes.
func dataDirective(data []byte) string {
	var buf strings.Builder
	buf.WriteString(".byte ")
	for i, b := range data {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "$%02X", b)
	}
	return buf.String()
}

// extractRegisterX extracts the X register nibble from a CHIP-8 opcode.
func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

// extractRegisterY extracts the Y register nibble from a CHIP-8 opcode.
func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
