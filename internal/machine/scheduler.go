package machine

import "time"

// TimerRate is the frequency in Hz of the delay and sound timer decrement.
const TimerRate = 60

const (
	timerInterval    = time.Second / TimerRate
	throughputWindow = time.Second
)

// Clock supplies the current time to the driving loop.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// TickResult describes what happened during a scheduler tick.
type TickResult struct {
	Executed bool   // an instruction was executed
	Signal   Signal // signal of the executed instruction
	Beep     bool   // the sound timer was running and an audio cue should play
}

// Scheduler paces instruction execution, the 60 Hz timers and the throughput
// measurement. Each limiter compares the time elapsed since it last fired
// against its own interval.
type Scheduler struct {
	executor *Executor

	lastInstruction time.Time
	lastTimer       time.Time
	lastWindow      time.Time

	due int // instruction limiter firings in the current throughput window
}

// NewScheduler returns a scheduler that runs instructions with the given executor.
func NewScheduler(executor *Executor) *Scheduler {
	return &Scheduler{
		executor: executor,
	}
}

// Start arms all limiters at the given time.
func (sc *Scheduler) Start(now time.Time) {
	sc.lastInstruction = now
	sc.lastTimer = now
	sc.lastWindow = now
	sc.due = 0
}

// Tick evaluates all limiters at the given time. It never blocks; callers poll
// it as often as possible. A returned error halted the machine.
func (sc *Scheduler) Tick(s *State, now time.Time) (TickResult, error) {
	var result TickResult
	if s.Halted {
		return result, ErrHalted
	}

	if now.Sub(sc.lastInstruction) >= instructionInterval(s.ClockRate) {
		sc.lastInstruction = now
		if !s.WaitingForKey {
			signal, err := sc.executor.Execute(s)
			result.Signal = signal
			if err != nil {
				return result, err
			}
			result.Executed = true
		}
		sc.due++
	}

	if now.Sub(sc.lastWindow) >= throughputWindow {
		s.CyclesPerSecond = sc.due
		sc.due = 0
		sc.lastWindow = now
	}

	if now.Sub(sc.lastTimer) >= timerInterval {
		sc.lastTimer = now
		if s.DelayTimer > 0 {
			s.DelayTimer--
		}
		if s.SoundTimer > 0 {
			s.SoundTimer--
			result.Beep = true
		}
	}

	return result, nil
}

func instructionInterval(clockRate int) time.Duration {
	if clockRate < 1 {
		clockRate = 1
	}
	return time.Second / time.Duration(clockRate)
}
