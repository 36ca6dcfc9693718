// Package worktimer implements the geofence-gated work timer state machine.
//
// The machine has two states, Stopped and Running, and tracks elapsed whole
// seconds while running. It is a plain reducer: callers feed it containment
// observations, ticks, and user start/stop requests one at a time and act on
// the returned Outcome. It performs no I/O and owns no goroutines or timers.
//
// # Transitions
//
//	Stopped --Start [Inside]-----> Running
//	Stopped --Start [!Inside]----> Stopped  (rejected with ErrNotInside)
//	Running --Stop---------------> Stopped  (elapsed reset to 0)
//	Running --Observe(Outside)---> Stopped  (elapsed reset to 0, ReasonExitedArea)
//	Running --Observe(Inside)----> Running
//	Running --Tick---------------> Running  (elapsed + 1)
//
// Re-entering the area never resumes the timer; only an explicit Start can
// move Stopped to Running.
//
// # Invariant
//
// While Running, the most recent containment observation is Inside.
//
// # Concurrency
//
// Machine is not safe for concurrent use. The session package serializes all
// events into a single goroutine.
package worktimer
