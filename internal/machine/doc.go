// Package machine implements the CHIP-8 virtual machine core.
//
// # Components
//
// The core is split into small parts that all operate on a single State value:
//   - State: registers, memory, stack, timers, framebuffer, key lines and mode flags
//   - Executor: fetches one instruction and dispatches it through a table keyed by
//     the leading nibble and a per-family selector
//   - DrawSprite: XOR sprite compositing with per-pixel wraparound and collision flag
//   - Scheduler: three wall-clock rate limiters for instructions, 60 Hz timers and
//     throughput measurement
//   - Machine: a facade bundling the above for a driving loop
//
// # Memory Layout
//
//   - 0x000-0x04F: built-in hexadecimal glyphs, 5 bytes each
//   - 0x200-0xFFF: ROM image and program data
//
// # Timing
//
// Nothing in this package sleeps or blocks. The caller polls Machine.Tick with the
// current time as often as it can, and the scheduler decides whether an instruction
// is due, whether the timers are due and whether the throughput window elapsed.
// Tests drive the scheduler with synthetic time.
//
// # Errors
//
// A program counter that leaves memory, a call with a full stack and a return with
// an empty stack halt the machine. The returned errors wrap ErrHalted. Unknown
// instructions are logged and skipped.
package machine
