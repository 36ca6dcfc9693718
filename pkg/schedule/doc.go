// Package schedule provides the cancelable periodic task that drives timer
// ticks.
//
// A Ticker is owned by the session that created it. The session reads C()
// from its event loop and calls Stop when the timer leaves the running state
// or the session is torn down. Stop is idempotent, and the channel of a
// stopped ticker is never read again, so no tick is delivered after Stop.
//
// Time is abstracted through clockwork.Clock so tests can advance a fake
// clock one second at a time.
package schedule
