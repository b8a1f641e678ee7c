package machine

import (
	"errors"
	"fmt"
)

// ErrHalted is wrapped by every error that stops the machine.
var ErrHalted = errors.New("machine halted")

var (
	ErrPCOutOfBounds  = fmt.Errorf("%w: program counter outside of memory", ErrHalted)
	ErrStackOverflow  = fmt.Errorf("%w: stack overflow", ErrHalted)
	ErrStackUnderflow = fmt.Errorf("%w: stack underflow", ErrHalted)
)

// ErrROMTooLarge is returned when a ROM image does not fit behind ProgramStart.
var ErrROMTooLarge = errors.New("ROM image too large")
