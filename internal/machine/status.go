package machine

import "fmt"

// Status returns the configured clock rate and the achieved share of it.
func Status(s *State) string {
	var speed float64
	if s.ClockRate > 0 {
		speed = float64(s.CyclesPerSecond) / float64(s.ClockRate) * 100.0
	}
	return fmt.Sprintf("Clock: %d Hz | Speed: %03.02f%%", s.ClockRate, speed)
}
