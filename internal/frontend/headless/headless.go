// Package headless provides a frontend without output device. It keeps the
// last presented frame and accepts scripted input.
package headless

import (
	"context"
	"sync"

	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/retrogolib/log"
)

var _ frontend.Frontend = (*Headless)(nil)

// Headless implements frontend.Frontend without any device.
type Headless struct {
	logger *log.Logger

	mu        sync.Mutex
	frames    int
	frame     []byte
	status    string
	keys      [frontend.KeyCount]bool
	commands  []frontend.Command
	quitAfter int
}

// New returns a headless frontend. With quitAfter greater than zero a quit
// command is reported once that many frames were presented.
func New(logger *log.Logger, quitAfter int) *Headless {
	return &Headless{
		logger:    logger,
		quitAfter: quitAfter,
	}
}

// Run calls the loop on the current goroutine.
func (h *Headless) Run(ctx context.Context, loop func(context.Context) error) error {
	return loop(ctx)
}

// Present stores a copy of the frame.
func (h *Headless) Present(frame []byte, status string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.frames++
	h.frame = append(h.frame[:0], frame...)
	if status != h.status {
		h.logger.Debug("Status", log.String("status", status))
	}
	h.status = status
	return nil
}

// Poll returns the key lines and the next queued command.
func (h *Headless) Poll() ([frontend.KeyCount]bool, frontend.Command) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.quitAfter > 0 && h.frames >= h.quitAfter {
		return h.keys, frontend.CommandQuit
	}
	if len(h.commands) == 0 {
		return h.keys, frontend.CommandNone
	}
	cmd := h.commands[0]
	h.commands = h.commands[1:]
	return h.keys, cmd
}

// Close does nothing.
func (h *Headless) Close() error {
	return nil
}

// SetKey sets the state of a key line.
func (h *Headless) SetKey(key uint8, pressed bool) {
	h.mu.Lock()
	h.keys[key&0x0F] = pressed
	h.mu.Unlock()
}

// Queue appends commands that are reported by the next polls, one per poll.
func (h *Headless) Queue(commands ...frontend.Command) {
	h.mu.Lock()
	h.commands = append(h.commands, commands...)
	h.mu.Unlock()
}

// Frames returns the number of presented frames.
func (h *Headless) Frames() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Frame returns a copy of the last presented frame.
func (h *Headless) Frame() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]byte(nil), h.frame...)
}

// Status returns the last presented status line.
func (h *Headless) Status() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.status
}
