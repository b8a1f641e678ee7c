package disasm

import (
	"fmt"
	"io"
	"slices"

	"github.com/retroenv/retrogolib/set"
)

// ProgramStart is the address ROM images are loaded to.
const ProgramStart = 0x200

const (
	startLabel  = "Start"
	funcNaming  = "_func_%04x"
	labelNaming = "_label_%04x"
)

// offset is a single word or trailing byte of a ROM image.
type offset struct {
	address uint16
	data    []byte
	code    string
	label   string
}

// Listing is a linear disassembly of a ROM image.
type Listing struct {
	name    string
	offsets []offset
}

// NewListing disassembles a ROM image. Every word is decoded in order, and
// jump and call targets that start a word inside the image get a label.
func NewListing(name string, rom []byte) *Listing {
	l := &Listing{
		name:    name,
		offsets: make([]offset, 0, (len(rom)+1)/instructionSize),
	}

	for i := 0; i < len(rom); i += instructionSize {
		end := min(i+instructionSize, len(rom))
		l.offsets = append(l.offsets, offset{
			address: ProgramStart + uint16(i),
			data:    rom[i:end],
		})
	}

	l.processCode()
	l.processJumpDestinations()
	return l
}

// processCode decodes all complete words.
func (l *Listing) processCode() {
	for i := range l.offsets {
		o := &l.offsets[i]
		if len(o.data) < instructionSize {
			o.code = dataDirective(o.data)
			continue
		}
		o.code = Disassemble(word(o.data))
	}
}

// processJumpDestinations names all branch destinations and updates the
// branching instructions with the generated label names.
func (l *Listing) processJumpDestinations() {
	callDestinations := set.New[uint16]()
	branchDestinations := set.New[uint16]()
	var destinations []uint16

	for _, o := range l.offsets {
		if len(o.data) < instructionSize {
			continue
		}
		op := word(o.data)
		target := op & 0x0FFF

		switch {
		case IsCall(op):
			callDestinations.Add(target)
		case IsJump(op):
		default:
			continue
		}
		if _, ok := l.offsetIndex(target); ok && !branchDestinations.Contains(target) {
			branchDestinations.Add(target)
			destinations = append(destinations, target)
		}
	}
	slices.Sort(destinations)

	if len(l.offsets) > 0 {
		l.offsets[0].label = startLabel
	}
	for _, address := range destinations {
		index, _ := l.offsetIndex(address)
		o := &l.offsets[index]
		if o.label != "" {
			continue
		}
		if callDestinations.Contains(address) {
			o.label = fmt.Sprintf(funcNaming, address)
		} else {
			o.label = fmt.Sprintf(labelNaming, address)
		}
	}

	for i := range l.offsets {
		o := &l.offsets[i]
		if len(o.data) < instructionSize {
			continue
		}
		op := word(o.data)
		if !IsCall(op) && !IsJump(op) {
			continue
		}
		index, ok := l.offsetIndex(op & 0x0FFF)
		if !ok {
			continue
		}
		ins, _ := Lookup(op)
		o.code = fmt.Sprintf("%s %s", ins.Name, l.offsets[index].label)
	}
}

// offsetIndex returns the index of the offset that starts at the address.
func (l *Listing) offsetIndex(address uint16) (int, bool) {
	if address < ProgramStart || (address-ProgramStart)%instructionSize != 0 {
		return 0, false
	}
	index := int(address-ProgramStart) / instructionSize
	if index >= len(l.offsets) {
		return 0, false
	}
	return index, true
}

// WriteTo writes the listing in retroasm syntax.
func (l *Listing) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}

	if _, err := fmt.Fprintf(cw, "; CHIP-8 ROM Disassembly\n"); err != nil {
		return cw.n, fmt.Errorf("writing header comment: %w", err)
	}
	if l.name != "" {
		if _, err := fmt.Fprintf(cw, "; Input: %s\n", l.name); err != nil {
			return cw.n, fmt.Errorf("writing input comment: %w", err)
		}
	}
	if _, err := fmt.Fprintf(cw, "; Program starts at $%03X in CHIP-8 memory space\n\n", ProgramStart); err != nil {
		return cw.n, fmt.Errorf("writing memory space comment: %w", err)
	}
	if _, err := fmt.Fprintf(cw, ".org $%03X\n\n", ProgramStart); err != nil {
		return cw.n, fmt.Errorf("writing org directive: %w", err)
	}

	for _, o := range l.offsets {
		if err := writeOffset(cw, o); err != nil {
			return cw.n, fmt.Errorf("writing offset $%04X: %w", o.address, err)
		}
	}
	return cw.n, nil
}

// writeOffset writes the label and the code of an offset with its address
// and bytes as comment.
func writeOffset(w io.Writer, o offset) error {
	if o.label != "" {
		if _, err := fmt.Fprintf(w, "%s:\n", o.label); err != nil {
			return fmt.Errorf("writing label %s: %w", o.label, err)
		}
	}

	comment := fmt.Sprintf("$%04X %02X", o.address, o.data[0])
	if len(o.data) > 1 {
		comment += fmt.Sprintf(" %02X", o.data[1])
	}
	if _, err := fmt.Fprintf(w, "%-32s ; %s\n", "    "+o.code, comment); err != nil {
		return fmt.Errorf("writing code: %w", err)
	}
	return nil
}

func word(data []byte) uint16 {
	return uint16(data[0])<<8 | uint16(data[1])
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
