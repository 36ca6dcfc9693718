// Package session runs one geofenced work timer session.
//
// A Session resolves the configured address once, asks for location
// permission, subscribes to positions and then runs a single event loop that
// merges three inputs:
//
//   - user intents (RequestStart, RequestStop, Toggle)
//   - position updates from the Source
//   - ticks of the timer, present only while it runs
//
// Only the loop goroutine touches the timer state machine, so every input is
// applied to a consistent state. Presentation code observes the session
// through Snapshot and the OnUpdate/OnNotice callbacks.
//
// Leaving the area while the timer runs stops it and resets the elapsed time
// to zero. The timer never restarts on its own when the device comes back.
package session
