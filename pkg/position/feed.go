package position

import (
	"context"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
)

// Feed is a push-based Source. Positions pushed while nobody is watching are
// rejected with ErrNotWatching. Only one subscription may be active at a time.
type Feed struct {
	mu     sync.Mutex
	clock  clockwork.Clock
	stream *Stream
}

// NewFeed creates a feed that timestamps samples with clock (real clock if nil).
func NewFeed(clock clockwork.Clock) *Feed {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Feed{clock: clock}
}

// Watch subscribes to the feed.
func (f *Feed) Watch(_ context.Context, opts WatchOptions) (Subscription, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.stream != nil {
		return nil, ErrAlreadyWatching
	}

	s := NewStream(opts, nil)
	s.onCancel = func() { f.detach(s) }
	f.stream = s
	return s, nil
}

// Watching reports whether a subscription is active.
func (f *Feed) Watching() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stream != nil
}

// Push delivers a position fix stamped with the current time.
func (f *Feed) Push(ctx context.Context, p geo.GeoPoint) error {
	return f.PushSample(ctx, Sample{Point: p, Time: f.clock.Now()})
}

// PushSample delivers a complete sample.
func (f *Feed) PushSample(ctx context.Context, sample Sample) error {
	s := f.current()
	if s == nil {
		return ErrNotWatching
	}
	return s.Emit(ctx, sample)
}

// Fail delivers a provider error to the subscriber.
func (f *Feed) Fail(ctx context.Context, err error) error {
	s := f.current()
	if s == nil {
		return ErrNotWatching
	}
	return s.Fail(ctx, err)
}

func (f *Feed) current() *Stream {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stream
}

func (f *Feed) detach(s *Stream) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stream == s {
		f.stream = nil
	}
}

var _ Source = (*Feed)(nil)
