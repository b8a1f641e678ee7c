package detector

import (
	"testing"

	"github.com/retroenv/chip8emu/internal/frontend"
	"github.com/retroenv/chip8emu/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func newTestDetector(t *testing.T, goos string, env map[string]string, isTerminal bool) *Detector {
	t.Helper()
	d := New(log.NewTestLogger(t))
	d.goos = goos
	d.getenv = func(key string) string { return env[key] }
	d.isTerminal = func() bool { return isTerminal }
	return d
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name         string
		frontendOpt  string
		goos         string
		env          map[string]string
		isTerminal   bool
		wantFrontend string
	}{
		{
			name:         "explicit terminal option",
			frontendOpt:  frontend.Terminal,
			goos:         "linux",
			env:          map[string]string{"DISPLAY": ":0"},
			wantFrontend: frontend.Terminal,
		},
		{
			name:         "explicit headless option",
			frontendOpt:  frontend.Headless,
			goos:         "windows",
			wantFrontend: frontend.Headless,
		},
		{
			name:         "X11 display",
			frontendOpt:  frontend.Auto,
			goos:         "linux",
			env:          map[string]string{"DISPLAY": ":0"},
			isTerminal:   true,
			wantFrontend: frontend.Window,
		},
		{
			name:         "Wayland display",
			goos:         "freebsd",
			env:          map[string]string{"WAYLAND_DISPLAY": "wayland-0"},
			wantFrontend: frontend.Window,
		},
		{
			name:         "no display with terminal",
			frontendOpt:  frontend.Auto,
			goos:         "linux",
			isTerminal:   true,
			wantFrontend: frontend.Terminal,
		},
		{
			name:         "no display without terminal",
			frontendOpt:  frontend.Auto,
			goos:         "linux",
			wantFrontend: frontend.Headless,
		},
		{
			name:         "windows always has a display",
			frontendOpt:  frontend.Auto,
			goos:         "windows",
			wantFrontend: frontend.Window,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDetector(t, tt.goos, tt.env, tt.isTerminal)
			opts := options.Program{
				Flags: options.Flags{Frontend: tt.frontendOpt},
			}

			got := d.Detect(opts)
			assert.Equal(t, tt.wantFrontend, got)
		})
	}
}
