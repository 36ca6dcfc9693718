package position

import (
	"context"
	"fmt"
	"sync"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
)

// Stream is a Subscription implementation shared by sources. It validates
// samples at the boundary and applies the distance filter.
//
// Updates are handed over unbuffered, so nothing is left queued once the
// consumer stops reading.
type Stream struct {
	opts    WatchOptions
	updates chan Update
	done    chan struct{}
	once    sync.Once

	onCancel func()

	mu   sync.Mutex
	last *geo.GeoPoint
}

// NewStream creates a stream. onCancel, if set, runs once on the first Cancel.
func NewStream(opts WatchOptions, onCancel func()) *Stream {
	return &Stream{
		opts:     opts,
		updates:  make(chan Update),
		done:     make(chan struct{}),
		onCancel: onCancel,
	}
}

// Updates returns the update channel.
func (s *Stream) Updates() <-chan Update {
	return s.updates
}

// Done is closed when the stream is cancelled.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Cancel ends the stream. It is idempotent.
func (s *Stream) Cancel() {
	s.once.Do(func() {
		close(s.done)
		if s.onCancel != nil {
			s.onCancel()
		}
	})
}

// Emit validates sample and delivers it unless the distance filter drops it.
// Invalid samples are delivered as an ErrInvalidSample error update.
// Emit blocks until the consumer receives, the stream is cancelled or ctx ends.
func (s *Stream) Emit(ctx context.Context, sample Sample) error {
	if err := sample.Point.Validate(); err != nil {
		return s.send(ctx, Update{Err: fmt.Errorf("%w: %v", ErrInvalidSample, err)})
	}
	if !s.admit(sample.Point) {
		return nil
	}
	return s.send(ctx, Update{Sample: &sample})
}

// Fail delivers a provider error.
func (s *Stream) Fail(ctx context.Context, err error) error {
	return s.send(ctx, Update{Err: err})
}

func (s *Stream) admit(p geo.GeoPoint) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.DistanceFilterMeters > 0 && s.last != nil {
		if geo.Distance(*s.last, p) < s.opts.DistanceFilterMeters {
			return false
		}
	}
	s.last = &p
	return true
}

func (s *Stream) send(ctx context.Context, u Update) error {
	select {
	case <-s.done:
		return ErrSubscriptionClosed
	default:
	}

	select {
	case s.updates <- u:
		return nil
	case <-s.done:
		return ErrSubscriptionClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ Subscription = (*Stream)(nil)
