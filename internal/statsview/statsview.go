//go:build statsview

package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address is the listen address of the stats server.
const Address = "localhost:12600"

const path = "/debug/statsview"

// Launch starts the stats server on a new goroutine.
func Launch(logger *log.Logger) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(Address))
		mgr := statsview.New()
		mgr.Start()
	}()

	logger.Info("Stats server started", log.String("url", "http://"+Address+path))
}

// Available returns whether the stats server can be launched.
func Available() bool {
	return true
}
