package audio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
)

// ErrUnsupportedFormat is returned for sample files that are neither wav nor mp3.
var ErrUnsupportedFormat = errors.New("unsupported sample format")

// LoadSample decodes a .wav or .mp3 file. Only the first channel is kept.
func LoadSample(path string) (*Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sample file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return decodeWAV(f)
	case ".mp3":
		return decodeMP3(f)
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedFormat, ext)
	}
}

func decodeWAV(r io.ReadSeeker) (*Sample, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("wav: not a valid wav file")
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wav: %w", err)
	}
	floatBuf := buf.AsFloat32Buffer()

	channels := max(1, int(dec.NumChans))
	s := &Sample{
		Rate: int(dec.SampleRate),
		Data: make([]float32, 0, len(floatBuf.Data)/channels),
	}
	for i := 0; i < len(floatBuf.Data); i += channels {
		s.Data = append(s.Data, floatBuf.Data[i])
	}
	return s, nil
}

// decodeMP3 reads the decoded stream, which is always 16 bit little endian
// stereo, and keeps the left channel.
func decodeMP3(r io.Reader) (*Sample, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	data, err := io.ReadAll(dec)
	if err != nil {
		return nil, fmt.Errorf("mp3: %w", err)
	}

	s := &Sample{
		Rate: dec.SampleRate(),
		Data: make([]float32, 0, len(data)/4),
	}
	for i := 0; i+1 < len(data); i += 4 {
		v := int16(uint16(data[i]) | uint16(data[i+1])<<8)
		s.Data = append(s.Data, float32(v)/32768)
	}
	return s, nil
}
