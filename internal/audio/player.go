package audio

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays the sound cue.
type Beeper interface {
	// Beep starts the cue unless it is already playing.
	Beep()
	Close() error
}

// Silent is a Beeper without output.
type Silent struct{}

// Beep does nothing.
func (Silent) Beep() {}

// Close does nothing.
func (Silent) Close() error { return nil }

// tone streams a sample on request and silence otherwise.
type tone struct {
	data      []byte
	remaining atomic.Int64 // bytes of the current cue left to stream
}

func newTone(sample *Sample) *tone {
	return &tone{
		data: sample.encodeFloat32LE(),
	}
}

// start begins streaming the sample if it is not streaming already.
func (t *tone) start() bool {
	return t.remaining.CompareAndSwap(0, int64(len(t.data)))
}

func (t *tone) Read(p []byte) (int, error) {
	n := 0
	if remaining := t.remaining.Load(); remaining > 0 {
		offset := int64(len(t.data)) - remaining
		n = copy(p, t.data[offset:])
		t.remaining.Add(-int64(n))
	}
	clear(p[n:])
	return len(p), nil
}

// OtoPlayer plays the cue on the audio device.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	tone   *tone
}

// NewOtoPlayer opens the audio device for the sample format and starts a
// stream that stays silent until Beep is called.
// Only one player can exist per process.
func NewOtoPlayer(sample *Sample) (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sample.Rate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   20 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	p := &OtoPlayer{
		ctx:  ctx,
		tone: newTone(sample),
	}
	p.player = ctx.NewPlayer(p.tone)
	p.player.Play()
	return p, nil
}

// Beep starts the cue, requests while it is playing are dropped.
func (p *OtoPlayer) Beep() {
	p.tone.start()
}

// Close stops the stream.
func (p *OtoPlayer) Close() error {
	if err := p.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
