// Package frontend defines the presentation and input collaborators of the
// emulator and the keyboard layout shared by all implementations.
package frontend

import (
	"context"
	"fmt"
)

// KeyCount is the number of keypad lines.
const KeyCount = 16

// Names of the available frontends.
const (
	Auto     = "auto"
	Window   = "window"
	Terminal = "terminal"
	Headless = "headless"
)

// Names lists all selectable frontend names.
var Names = []string{Auto, Window, Terminal, Headless}

// Command is an auxiliary request from the user that is not a keypad line.
type Command uint8

const (
	CommandNone Command = iota
	CommandReset
	CommandSpeedUp
	CommandSpeedDown
	CommandQuit
)

func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandReset:
		return "reset"
	case CommandSpeedUp:
		return "speed up"
	case CommandSpeedDown:
		return "speed down"
	case CommandQuit:
		return "quit"
	default:
		return fmt.Sprintf("command(%d)", uint8(c))
	}
}

// Display presents a framebuffer with one cell per pixel and a status line.
type Display interface {
	Present(frame []byte, status string) error
}

// Input reports the current keypad lines and a pending command.
type Input interface {
	Poll() (keys [KeyCount]bool, cmd Command)
}

// Frontend combines display and input with ownership of the thread that the
// underlying device requires. Run calls loop exactly once and returns its error.
type Frontend interface {
	Display
	Input

	Run(ctx context.Context, loop func(context.Context) error) error
	Close() error
}
