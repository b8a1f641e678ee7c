// Package window provides a frontend that renders frames into a scaled
// desktop window and reads keys from the keyboard.
package window

import (
	"context"
	"fmt"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"
)

const (
	statusHeight   = 18
	statusMargin   = 4
	statusBaseline = 13
)

var _ frontend.Frontend = (*Window)(nil)

// keypadKeys binds the keypad keys to the keyboard.
var keypadKeys = [frontend.KeyCount]ebiten.Key{
	0x1: ebiten.KeyDigit1, 0x2: ebiten.KeyDigit2, 0x3: ebiten.KeyDigit3, 0xC: ebiten.KeyDigit4,
	0x4: ebiten.KeyQ, 0x5: ebiten.KeyW, 0x6: ebiten.KeyE, 0xD: ebiten.KeyR,
	0x7: ebiten.KeyA, 0x8: ebiten.KeyS, 0x9: ebiten.KeyD, 0xE: ebiten.KeyF,
	0xA: ebiten.KeyZ, 0x0: ebiten.KeyX, 0xB: ebiten.KeyC, 0xF: ebiten.KeyV,
}

// Window implements frontend.Frontend and ebiten.Game.
type Window struct {
	logger *log.Logger
	title  string
	width  int
	height int
	scale  int

	mu      sync.RWMutex
	pixels  []byte // RGBA
	status  string
	keys    [frontend.KeyCount]bool
	command frontend.Command

	image *ebiten.Image
	done  chan struct{}
}

// New returns a window frontend for a screen of the given size in pixels,
// enlarged by scale.
func New(logger *log.Logger, title string, width, height, scale int) *Window {
	return &Window{
		logger: logger,
		title:  title,
		width:  width,
		height: height,
		scale:  max(1, scale),
		pixels: make([]byte, width*height*4),
		done:   make(chan struct{}),
	}
}

// Run opens the window and runs the game loop on the current goroutine, which
// has to be the main goroutine on most platforms. The loop is called on a new
// goroutine; the window closes when it returns.
func (w *Window) Run(ctx context.Context, loop func(context.Context) error) error {
	ebiten.SetWindowSize(w.Layout(0, 0))
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetRunnableOnUnfocused(true)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var loopErr error
	go func() {
		defer close(w.done)
		loopErr = loop(ctx)
	}()

	err := ebiten.RunGame(w)
	cancel()
	<-w.done

	if err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return loopErr
}

// Close does nothing, the window is closed when Run returns.
func (w *Window) Close() error {
	return nil
}

// Present converts the frame for the next window update.
func (w *Window) Present(frame []byte, status string) error {
	if len(frame) < w.width*w.height {
		return fmt.Errorf("frame size %d does not match screen %dx%d", len(frame), w.width, w.height)
	}

	w.mu.Lock()
	toRGBA(w.pixels, frame)
	w.status = status
	w.mu.Unlock()
	return nil
}

// Poll returns the key lines of the last window update and the pending command.
func (w *Window) Poll() ([frontend.KeyCount]bool, frontend.Command) {
	w.mu.Lock()
	defer w.mu.Unlock()

	cmd := w.command
	if cmd != frontend.CommandQuit {
		w.command = frontend.CommandNone
	}
	return w.keys, cmd
}

// Update reads the keyboard state.
func (w *Window) Update() error {
	select {
	case <-w.done:
		return ebiten.Termination
	default:
	}

	var keys [frontend.KeyCount]bool
	for i, key := range keypadKeys {
		keys[i] = ebiten.IsKeyPressed(key)
	}

	cmd := frontend.CommandNone
	switch {
	case ebiten.IsWindowBeingClosed(), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		cmd = frontend.CommandQuit
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		cmd = frontend.CommandReset
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		cmd = frontend.CommandSpeedDown
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		cmd = frontend.CommandSpeedUp
	}

	w.update(keys, cmd)
	return nil
}

func (w *Window) update(keys [frontend.KeyCount]bool, cmd frontend.Command) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.keys = keys
	if cmd != frontend.CommandNone && w.command != frontend.CommandQuit {
		w.command = cmd
	}
}

// Draw renders the scaled frame and the status line below it.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.image == nil {
		w.image = ebiten.NewImage(w.width, w.height)
	}

	w.mu.RLock()
	w.image.WritePixels(w.pixels)
	status := w.status
	w.mu.RUnlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.image, op)

	text.Draw(screen, status, basicfont.Face7x13, statusMargin, w.height*w.scale+statusBaseline, color.White)
}

// Layout returns the fixed size of the scaled screen with the status line.
func (w *Window) Layout(_, _ int) (int, int) {
	return w.width * w.scale, w.height*w.scale + statusHeight
}

// toRGBA converts framebuffer cells to opaque white and black RGBA pixels.
func toRGBA(dst, frame []byte) {
	for i := range len(dst) / 4 {
		var c byte
		if frame[i] != 0 {
			c = 0xFF
		}
		dst[4*i] = c
		dst[4*i+1] = c
		dst[4*i+2] = c
		dst[4*i+3] = 0xFF
	}
}
