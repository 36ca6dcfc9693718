package position

import (
	"context"
	"errors"
	"time"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
)

// Position source errors.
var (
	ErrInvalidSample      = errors.New("invalid position sample")
	ErrSubscriptionClosed = errors.New("position subscription closed")
	ErrAlreadyWatching    = errors.New("position source already watched")
	ErrNotWatching        = errors.New("position source not watched")
	ErrInvalidOptions     = errors.New("invalid watch options")
)

// Accuracy is the desired provider accuracy.
type Accuracy uint8

const (
	// AccuracyHigh requests GPS-grade fixes.
	AccuracyHigh Accuracy = iota

	// AccuracyBalanced trades precision for power.
	AccuracyBalanced

	// AccuracyLow accepts coarse network fixes.
	AccuracyLow
)

// String returns the accuracy name.
func (a Accuracy) String() string {
	switch a {
	case AccuracyHigh:
		return "high"
	case AccuracyBalanced:
		return "balanced"
	case AccuracyLow:
		return "low"
	default:
		return "unknown"
	}
}

// ParseAccuracy parses the names produced by Accuracy.String.
func ParseAccuracy(s string) (Accuracy, error) {
	switch s {
	case "high", "":
		return AccuracyHigh, nil
	case "balanced":
		return AccuracyBalanced, nil
	case "low":
		return AccuracyLow, nil
	default:
		return 0, ErrInvalidOptions
	}
}

// WatchOptions configures a subscription.
type WatchOptions struct {
	// Accuracy is a hint for the provider.
	Accuracy Accuracy

	// DistanceFilterMeters drops samples closer than this to the last one.
	// Zero delivers every sample.
	DistanceFilterMeters float64

	// Interval is the desired update cadence for sources that poll or replay.
	Interval time.Duration
}

// DefaultWatchOptions returns high accuracy, no distance filter and a one
// second cadence.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{
		Accuracy:             AccuracyHigh,
		DistanceFilterMeters: 0,
		Interval:             time.Second,
	}
}

// Validate checks the options.
func (o WatchOptions) Validate() error {
	if o.DistanceFilterMeters < 0 || o.Interval < 0 {
		return ErrInvalidOptions
	}
	if o.Accuracy > AccuracyLow {
		return ErrInvalidOptions
	}
	return nil
}

// Sample is a single position fix.
type Sample struct {
	Point geo.GeoPoint

	// AccuracyMeters is the provider's horizontal error estimate, 0 if unknown.
	AccuracyMeters float64

	// Time is when the fix was taken.
	Time time.Time
}

// Update is one element of a position stream. Exactly one field is set.
type Update struct {
	Sample *Sample
	Err    error
}

// Source produces position updates.
type Source interface {
	// Watch subscribes to position updates.
	Watch(ctx context.Context, opts WatchOptions) (Subscription, error)
}

// Subscription is an active position stream.
type Subscription interface {
	// Updates returns the update channel. It is never closed.
	Updates() <-chan Update

	// Cancel ends the subscription. Calling it again has no effect.
	Cancel()
}
