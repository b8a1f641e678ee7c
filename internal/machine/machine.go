package machine

import (
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Config contains the options for creating a Machine.
type Config struct {
	Quirks bool        // legacy shift and bulk transfer behaviour
	Trace  bool        // log every executed instruction at debug level
	Random func() byte // random byte source, math/rand if nil
}

// Machine bundles the state, executor and scheduler for a driving loop.
// It is not safe for concurrent use; a single goroutine owns it.
type Machine struct {
	logger    *log.Logger
	state     *State
	executor  *Executor
	scheduler *Scheduler
}

// New returns an initialized machine.
func New(logger *log.Logger, cfg Config) *Machine {
	executor := NewExecutor(logger, cfg.Random, cfg.Trace)
	return &Machine{
		logger:    logger,
		state:     Initialize(cfg.Quirks),
		executor:  executor,
		scheduler: NewScheduler(executor),
	}
}

// State gives read access to the machine state.
func (m *Machine) State() *State {
	return m.state
}

// LoadROM copies a ROM image to ProgramStart.
func (m *Machine) LoadROM(rom []byte) error {
	return m.state.LoadROM(rom)
}

// Start arms the scheduler.
func (m *Machine) Start(now time.Time) {
	m.scheduler.Start(now)
}

// Reset re-initializes the machine with its quirk mode and re-arms the scheduler.
func (m *Machine) Reset(now time.Time) {
	m.state.Reset()
	m.scheduler.Start(now)
}

// Tick polls the scheduler.
func (m *Machine) Tick(now time.Time) (TickResult, error) {
	return m.scheduler.Tick(m.state, now)
}

// SetKeys reports the state of all key lines.
func (m *Machine) SetKeys(keys [KeyCount]bool) {
	m.state.SetKeys(keys)
}

// ClockRate returns the configured instruction rate in Hz.
func (m *Machine) ClockRate() int {
	return m.state.ClockRate
}

// SetClockRate sets the instruction rate, clamped to the supported range, and
// returns the applied rate. It takes effect at the next tick.
func (m *Machine) SetClockRate(hz int) int {
	hz = max(MinClockRate, min(MaxClockRate, hz))
	if hz != m.state.ClockRate {
		m.logger.Debug("Clock rate changed", log.Int("hz", hz))
	}
	m.state.ClockRate = hz
	return hz
}

// TakeDrawPending returns whether a frame should be presented and clears the flag.
func (m *Machine) TakeDrawPending() bool {
	pending := m.state.DrawPending
	m.state.DrawPending = false
	return pending
}

// Frame returns a copy of the framebuffer.
func (m *Machine) Frame() []byte {
	frame := make([]byte, FramebufferSize)
	copy(frame, m.state.Framebuffer[:])
	return frame
}

// Status returns the diagnostics string.
func (m *Machine) Status() string {
	return Status(m.state)
}

// Halted returns whether the machine reached its terminal state.
func (m *Machine) Halted() bool {
	return m.state.Halted
}
