// Package metrics exposes session counters and gauges.
package metrics

// Recorder receives session observations. The session calls it from its
// loop goroutine only.
type Recorder interface {
	IncTick()
	IncTransition(reason string)
	IncAreaExit()
	IncRejectedStart()
	IncPositionError()
	SetRunning(running bool)
	SetInside(inside bool)
	SetElapsed(seconds uint64)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncTick()             {}
func (NoopRecorder) IncTransition(string) {}
func (NoopRecorder) IncAreaExit()         {}
func (NoopRecorder) IncRejectedStart()    {}
func (NoopRecorder) IncPositionError()    {}
func (NoopRecorder) SetRunning(bool)      {}
func (NoopRecorder) SetInside(bool)       {}
func (NoopRecorder) SetElapsed(uint64)    {}

var _ Recorder = NoopRecorder{}
