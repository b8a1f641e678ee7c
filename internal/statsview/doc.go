// Package statsview launches a local HTTP server with runtime statistics of the
// emulator. It is only functional when built with the statsview build tag.
//
// After launch, the charts are available at localhost:12600/debug/statsview and
// the pprof handlers at localhost:12600/debug/pprof/.
package statsview
