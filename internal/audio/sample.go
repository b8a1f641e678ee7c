// Package audio plays the sound cue of the machine.
package audio

import (
	"encoding/binary"
	"math"
	"time"
)

// Defaults of the synthesized beep.
const (
	DefaultRate      = 44100
	DefaultFrequency = 880
	DefaultDuration  = 100 * time.Millisecond

	amplitude = 0.25
)

// Sample is a mono sound with values in the range [-1, 1].
type Sample struct {
	Rate int
	Data []float32
}

// Duration returns the playing time of the sample.
func (s *Sample) Duration() time.Duration {
	if s.Rate == 0 {
		return 0
	}
	return time.Duration(len(s.Data)) * time.Second / time.Duration(s.Rate)
}

// Synthesize returns a square wave of the given frequency and duration.
func Synthesize(rate, frequency int, duration time.Duration) *Sample {
	count := int(int64(rate) * int64(duration) / int64(time.Second))
	s := &Sample{
		Rate: rate,
		Data: make([]float32, count),
	}

	period := float64(rate) / float64(frequency)
	for i := range s.Data {
		if math.Mod(float64(i), period) < period/2 {
			s.Data[i] = amplitude
		} else {
			s.Data[i] = -amplitude
		}
	}
	return s
}

// encodeFloat32LE returns the sample data in the little endian float format
// of the audio device.
func (s *Sample) encodeFloat32LE() []byte {
	data := make([]byte, 4*len(s.Data))
	for i, v := range s.Data {
		binary.LittleEndian.PutUint32(data[4*i:], math.Float32bits(v))
	}
	return data
}
