// Package terminal provides a frontend that draws frames with block characters
// on an ANSI terminal and reads keys from stdin in raw mode.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// HoldDuration is how long a key counts as pressed after its character arrived.
// Terminals report no key releases.
const HoldDuration = 150 * time.Millisecond

const (
	ctrlC = 0x03

	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearLine   = "\x1b[K"
)

var _ frontend.Frontend = (*Terminal)(nil)

// Terminal implements frontend.Frontend for ANSI terminals.
type Terminal struct {
	logger *log.Logger
	in     io.Reader
	out    io.Writer
	now    func() time.Time

	width  int
	height int

	mu        sync.Mutex
	pressedAt [frontend.KeyCount]time.Time
	command   frontend.Command

	fd       int
	oldState *term.State
	buf      strings.Builder
}

// New returns a terminal frontend for a screen of the given size in pixels.
func New(logger *log.Logger, in io.Reader, out io.Writer, width, height int) *Terminal {
	return &Terminal{
		logger: logger,
		in:     in,
		out:    out,
		now:    time.Now,
		width:  width,
		height: height,
		fd:     -1,
	}
}

// Run switches stdin to raw mode when it is a terminal, starts reading keys
// and calls the loop on the current goroutine.
func (t *Terminal) Run(ctx context.Context, loop func(context.Context) error) error {
	if f, ok := t.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		oldState, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("setting terminal to raw mode: %w", err)
		}
		t.oldState = oldState
	}
	defer func() {
		_ = t.restore()
	}()

	if _, err := io.WriteString(t.out, clearScreen+hideCursor); err != nil {
		return fmt.Errorf("preparing terminal: %w", err)
	}
	defer func() {
		_, _ = io.WriteString(t.out, showCursor+"\r\n")
	}()

	go t.readInput()
	return loop(ctx)
}

// Close restores the terminal state.
func (t *Terminal) Close() error {
	return t.restore()
}

func (t *Terminal) restore() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.oldState == nil {
		return nil
	}
	err := term.Restore(t.fd, t.oldState)
	t.oldState = nil
	if err != nil {
		return fmt.Errorf("restoring terminal: %w", err)
	}
	return nil
}

// readInput reads characters until the input is closed. The goroutine ends
// with the process when stdin stays open.
func (t *Terminal) readInput() {
	buf := make([]byte, 64)
	for {
		n, err := t.in.Read(buf)
		if n > 0 {
			t.handleInput(buf[:n])
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.logger.Debug("Reading terminal input failed", log.Err(err))
			}
			return
		}
	}
}

// handleInput processes a chunk of input characters. Escape sequences of
// special keys arrive as a single chunk and are ignored.
func (t *Terminal) handleInput(data []byte) {
	if len(data) > 1 && data[0] == frontend.EscapeRune {
		return
	}

	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range data {
		if b == ctrlC {
			t.command = frontend.CommandQuit
			continue
		}
		if key, ok := frontend.KeyForRune(rune(b)); ok {
			t.pressedAt[key] = now
			continue
		}
		if cmd := frontend.CommandForRune(rune(b)); cmd != frontend.CommandNone {
			t.command = cmd
		}
	}
}

// Poll returns the keys whose character arrived within the hold duration and
// the pending command.
func (t *Terminal) Poll() ([frontend.KeyCount]bool, frontend.Command) {
	now := t.now()
	t.mu.Lock()
	defer t.mu.Unlock()

	var keys [frontend.KeyCount]bool
	for i, pressed := range t.pressedAt {
		keys[i] = !pressed.IsZero() && now.Sub(pressed) < HoldDuration
	}
	cmd := t.command
	if cmd != frontend.CommandQuit {
		t.command = frontend.CommandNone
	}
	return keys, cmd
}

// Present draws the frame with two pixel rows per text line followed by the status.
func (t *Terminal) Present(frame []byte, status string) error {
	if len(frame) < t.width*t.height {
		return fmt.Errorf("frame size %d does not match screen %dx%d", len(frame), t.width, t.height)
	}

	t.buf.Reset()
	t.buf.WriteString(cursorHome)
	for y := 0; y < t.height; y += 2 {
		for x := range t.width {
			top := frame[y*t.width+x] != 0
			bottom := y+1 < t.height && frame[(y+1)*t.width+x] != 0
			t.buf.WriteRune(blockRune(top, bottom))
		}
		t.buf.WriteString("\r\n")
	}
	t.buf.WriteString(status)
	t.buf.WriteString(clearLine)

	if _, err := io.WriteString(t.out, t.buf.String()); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

func blockRune(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
