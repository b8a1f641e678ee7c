// Package detector handles frontend detection.
package detector

import (
	"os"
	"runtime"

	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// Detector selects the frontend from options and the environment of the process.
type Detector struct {
	logger *log.Logger

	getenv     func(string) string
	isTerminal func() bool
	goos       string
}

// New creates a new frontend detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
		getenv: os.Getenv,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		goos: runtime.GOOS,
	}
}

// Detect determines the frontend from options or auto-detection.
// An explicitly selected frontend is returned unchanged, otherwise a window is
// used when a graphical display is available, the terminal when stdin is a
// terminal and the headless frontend when neither is available.
func (d *Detector) Detect(opts options.Program) string {
	if opts.Frontend != "" && opts.Frontend != frontend.Auto {
		return opts.Frontend
	}

	name := d.detectFromEnvironment()
	d.logger.Debug("Auto-detected frontend",
		log.String("frontend", name),
		log.String("os", d.goos))
	return name
}

// detectFromEnvironment determines the frontend type based on the display
// environment variables and stdin.
func (d *Detector) detectFromEnvironment() string {
	if d.hasDisplay() {
		return frontend.Window
	}
	if d.isTerminal() {
		return frontend.Terminal
	}
	return frontend.Headless
}

// hasDisplay returns whether a graphical display is advertised. Only unix-like
// systems announce it through the environment.
func (d *Detector) hasDisplay() bool {
	switch d.goos {
	case "windows", "darwin", "ios", "android":
		return true
	}
	return d.getenv("DISPLAY") != "" || d.getenv("WAYLAND_DISPLAY") != ""
}
