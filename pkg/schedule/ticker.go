package schedule

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultInterval is the tick period of the work timer.
const DefaultInterval = time.Second

// ErrInvalidInterval is returned for non-positive tick intervals.
var ErrInvalidInterval = errors.New("invalid tick interval")

// Ticker delivers ticks at a fixed interval until stopped.
// The first tick arrives one interval after creation.
type Ticker struct {
	mu      sync.Mutex
	ticker  clockwork.Ticker
	c       <-chan time.Time
	stopped bool
}

// NewTicker starts a ticker on clock. A nil clock uses the real clock.
func NewTicker(clock clockwork.Clock, interval time.Duration) (*Ticker, error) {
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	t := clock.NewTicker(interval)
	return &Ticker{
		ticker: t,
		c:      t.Chan(),
	}, nil
}

// C returns the tick channel. It returns nil once the ticker is stopped, so a
// select that re-reads C after Stop blocks on that case forever.
func (t *Ticker) C() <-chan time.Time {
	if t == nil {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return nil
	}
	return t.c
}

// Stop stops the ticker. It is safe to call more than once and on a nil Ticker.
func (t *Ticker) Stop() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	t.ticker.Stop()
}

// Stopped reports whether Stop has been called.
func (t *Ticker) Stopped() bool {
	if t == nil {
		return true
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
