package position

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"gopkg.in/yaml.v3"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
)

// ErrEmptyTrack is returned when a track has no points.
var ErrEmptyTrack = errors.New("track has no points")

// TrackFile is the YAML layout of a recorded or scripted walk.
//
//	name: office-walk
//	interval: 1s
//	loop: false
//	points:
//	  - {latitude: 30.7046, longitude: 76.7179, repeat: 10}
//	  - {latitude: 30.7049, longitude: 76.7179}
type TrackFile struct {
	Name     string        `yaml:"name"`
	Interval time.Duration `yaml:"interval"`
	Loop     bool          `yaml:"loop"`
	Points   []TrackPoint  `yaml:"points"`
}

// TrackPoint is one position of a track, emitted Repeat times (at least once).
type TrackPoint struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Repeat    int     `yaml:"repeat,omitempty"`
}

// TrackConfig configures a Track.
type TrackConfig struct {
	// Clock drives the replay. Defaults to the real clock.
	Clock clockwork.Clock

	// Interval overrides WatchOptions.Interval when positive.
	Interval time.Duration

	// Loop restarts the track after the last point instead of holding it.
	Loop bool
}

// Track is a Source that replays a fixed list of points, one per interval.
// The first point is emitted immediately after Watch.
type Track struct {
	name     string
	points   []geo.GeoPoint
	clock    clockwork.Clock
	interval time.Duration
	loop     bool
}

// NewTrack creates a track over points.
func NewTrack(points []geo.GeoPoint, cfg TrackConfig) (*Track, error) {
	if len(points) == 0 {
		return nil, ErrEmptyTrack
	}
	if cfg.Interval < 0 {
		return nil, ErrInvalidOptions
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	return &Track{
		points:   append([]geo.GeoPoint(nil), points...),
		clock:    cfg.Clock,
		interval: cfg.Interval,
		loop:     cfg.Loop,
	}, nil
}

// ParseTrack decodes a YAML track.
func ParseTrack(data []byte, clock clockwork.Clock) (*Track, error) {
	var tf TrackFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("parse track: %w", err)
	}

	var points []geo.GeoPoint
	for i, tp := range tf.Points {
		p := geo.GeoPoint{Latitude: tp.Latitude, Longitude: tp.Longitude}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("track point %d: %w", i, err)
		}
		n := tp.Repeat
		if n < 1 {
			n = 1
		}
		for j := 0; j < n; j++ {
			points = append(points, p)
		}
	}

	t, err := NewTrack(points, TrackConfig{Clock: clock, Interval: tf.Interval, Loop: tf.Loop})
	if err != nil {
		return nil, err
	}
	t.name = tf.Name
	return t, nil
}

// LoadTrack reads and parses a YAML track file.
func LoadTrack(path string, clock clockwork.Clock) (*Track, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read track: %w", err)
	}
	return ParseTrack(data, clock)
}

// Name returns the track name from the file, if any.
func (t *Track) Name() string {
	return t.name
}

// Len returns the number of expanded points.
func (t *Track) Len() int {
	return len(t.points)
}

// Watch starts replaying the track. Each call replays from the first point.
func (t *Track) Watch(ctx context.Context, opts WatchOptions) (Subscription, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	interval := t.interval
	if interval <= 0 {
		interval = opts.Interval
	}
	if interval <= 0 {
		interval = time.Second
	}

	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup

	s := NewStream(opts, nil)
	s.onCancel = func() {
		cancel()
		wg.Wait()
	}

	ticker := t.clock.NewTicker(interval)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer ticker.Stop()
		t.replay(runCtx, s, ticker)
	}()

	return s, nil
}

func (t *Track) replay(ctx context.Context, s *Stream, ticker clockwork.Ticker) {
	i := 0
	for {
		if i < len(t.points) {
			if err := s.Emit(ctx, Sample{Point: t.points[i], Time: t.clock.Now()}); err != nil {
				return
			}
			i++
			if i == len(t.points) && t.loop {
				i = 0
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-s.Done():
			return
		case <-ticker.Chan():
		}
	}
}

var _ Source = (*Track)(nil)
