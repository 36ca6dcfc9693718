// Package natsfeed provides a position source backed by a NATS subject.
//
// A device-side location daemon publishes one JSON message per fix:
//
//	{"latitude": 30.7046, "longitude": 76.7179, "accuracy": 4.2, "timestamp": "2025-01-02T15:04:05Z"}
//
// Malformed payloads are delivered as ErrInvalidSample error updates.
package natsfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/position"
)

// DefaultSubject is the subject positions are published on.
const DefaultSubject = "geoclock.position"

// ErrNoSubject is returned when the subject is empty.
var ErrNoSubject = errors.New("nats subject is required")

// Message is the JSON payload of a position fix.
type Message struct {
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	Accuracy  float64   `json:"accuracy,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// DecodeSample decodes a payload. now stamps messages without a timestamp.
func DecodeSample(data []byte, now time.Time) (position.Sample, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return position.Sample{}, fmt.Errorf("%w: %v", position.ErrInvalidSample, err)
	}
	if msg.Latitude == nil || msg.Longitude == nil {
		return position.Sample{}, fmt.Errorf("%w: missing coordinates", position.ErrInvalidSample)
	}

	ts := msg.Timestamp
	if ts.IsZero() {
		ts = now
	}
	return position.Sample{
		Point:          geo.GeoPoint{Latitude: *msg.Latitude, Longitude: *msg.Longitude},
		AccuracyMeters: msg.Accuracy,
		Time:           ts,
	}, nil
}

// subscriber is the part of a NATS connection the source needs.
type subscriber interface {
	subscribe(subject string, handler func(data []byte)) (unsubscribe func() error, err error)
}

type natsConn struct {
	conn *nats.Conn
}

func (c natsConn) subscribe(subject string, handler func(data []byte)) (func() error, error) {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, err
	}
	return sub.Unsubscribe, nil
}

// Source subscribes to position fixes on a NATS subject.
type Source struct {
	conn    *nats.Conn
	sub     subscriber
	subject string
	clock   clockwork.Clock
	owned   bool

	mu     sync.Mutex
	active *position.Stream
}

// New wraps an existing connection. The caller keeps ownership of conn.
// clock stamps messages without a timestamp (real clock if nil).
func New(conn *nats.Conn, subject string, clock clockwork.Clock) (*Source, error) {
	if subject == "" {
		return nil, ErrNoSubject
	}
	return newSource(natsConn{conn: conn}, subject, clock), nil
}

func newSource(sub subscriber, subject string, clock clockwork.Clock) *Source {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Source{sub: sub, subject: subject, clock: clock}
}

// Dial connects to url and returns a Source that owns the connection.
// Connection errors reported asynchronously by the client are forwarded to
// the active subscription as error updates.
func Dial(url, subject string, clock clockwork.Clock, opts ...nats.Option) (*Source, error) {
	if subject == "" {
		return nil, ErrNoSubject
	}

	s := newSource(nil, subject, clock)
	s.owned = true
	opts = append(opts,
		nats.Name("geoclock"),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			s.report(err)
		}),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				s.report(fmt.Errorf("nats disconnected: %w", err))
			}
		}),
	)

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to nats: %w", err)
	}
	s.conn = conn
	s.sub = natsConn{conn: conn}
	return s, nil
}

// Watch subscribes to the subject.
func (s *Source) Watch(ctx context.Context, opts position.WatchOptions) (position.Subscription, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil {
		return nil, position.ErrAlreadyWatching
	}

	runCtx, cancel := context.WithCancel(ctx)
	stream := position.NewStream(opts, nil)

	unsubscribe, err := s.sub.subscribe(s.subject, func(data []byte) {
		s.handle(runCtx, stream, data)
	})
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe %s: %w", s.subject, err)
	}

	s.active = stream
	return &subscription{
		Stream: stream,
		stop: func() {
			cancel()
			_ = unsubscribe()
			s.mu.Lock()
			if s.active == stream {
				s.active = nil
			}
			s.mu.Unlock()
		},
	}, nil
}

// Close closes the connection if the Source created it.
func (s *Source) Close() {
	if s.owned && s.conn != nil {
		s.conn.Close()
	}
}

func (s *Source) handle(ctx context.Context, stream *position.Stream, data []byte) {
	sample, err := DecodeSample(data, s.clock.Now())
	if err != nil {
		_ = stream.Fail(ctx, err)
		return
	}
	_ = stream.Emit(ctx, sample)
}

func (s *Source) report(err error) {
	s.mu.Lock()
	stream := s.active
	s.mu.Unlock()
	if stream == nil {
		return
	}
	// Delivery is best effort; the client callback goroutine must not stall.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = stream.Fail(ctx, err)
	}()
}

// subscription couples the stream with the NATS unsubscribe.
type subscription struct {
	*position.Stream
	once sync.Once
	stop func()
}

func (s *subscription) Cancel() {
	s.once.Do(func() {
		s.Stream.Cancel()
		s.stop()
	})
}

var _ position.Source = (*Source)(nil)
