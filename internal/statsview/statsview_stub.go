//go:build !statsview

package statsview

import "github.com/retroenv/retrogolib/log"

// Launch does nothing, the stats server is not part of this build.
func Launch(_ *log.Logger) {
}

// Available returns whether the stats server can be launched.
func Available() bool {
	return false
}
