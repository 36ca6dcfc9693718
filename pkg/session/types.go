package session

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/eventlog"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geocode"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/metrics"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/permission"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/position"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/schedule"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/worktimer"
)

// Session errors.
var (
	ErrInvalidConfig    = errors.New("invalid configuration")
	ErrGeocodeFailed    = errors.New("address could not be resolved")
	ErrPermissionDenied = errors.New("location permission denied")
	ErrWatchFailed      = errors.New("position updates unavailable")
	ErrNotActive        = errors.New("session not active")
	ErrAlreadyStarted   = errors.New("session already started")

	// ErrNotInside is returned when a start is requested outside the area.
	ErrNotInside = worktimer.ErrNotInside
)

// ExitedAreaMessage is the notice text shown when leaving the area stops the timer.
const ExitedAreaMessage = "You are outside the designated area!"

// Lifecycle is the session lifecycle state.
type Lifecycle uint8

const (
	// LifecycleIdle - created, Start not called yet.
	LifecycleIdle Lifecycle = iota

	// LifecycleResolving - geocoding the address.
	LifecycleResolving

	// LifecycleAwaitingPermission - waiting for the permission gate.
	LifecycleAwaitingPermission

	// LifecycleWatching - the event loop is running.
	LifecycleWatching

	// LifecycleClosed - closed by the owner.
	LifecycleClosed

	// LifecycleFailed - setup failed; the timer can never start.
	LifecycleFailed
)

// String returns the lifecycle name.
func (l Lifecycle) String() string {
	switch l {
	case LifecycleIdle:
		return "IDLE"
	case LifecycleResolving:
		return "RESOLVING"
	case LifecycleAwaitingPermission:
		return "AWAITING_PERMISSION"
	case LifecycleWatching:
		return "WATCHING"
	case LifecycleClosed:
		return "CLOSED"
	case LifecycleFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// NoticeKind identifies a user-facing notice.
type NoticeKind uint8

const (
	// NoticeExitedArea - the timer was stopped because the device left the area.
	NoticeExitedArea NoticeKind = iota

	// NoticeGeocodeFailed - the address could not be resolved.
	NoticeGeocodeFailed

	// NoticePermissionDenied - location permission was refused.
	NoticePermissionDenied

	// NoticePositionError - the position source reported an error.
	NoticePositionError
)

// String returns the notice name.
func (k NoticeKind) String() string {
	switch k {
	case NoticeExitedArea:
		return "EXITED_AREA"
	case NoticeGeocodeFailed:
		return "GEOCODE_FAILED"
	case NoticePermissionDenied:
		return "PERMISSION_DENIED"
	case NoticePositionError:
		return "POSITION_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Notice is a user-facing message emitted by the session.
type Notice struct {
	Kind    NoticeKind
	Message string

	// Err is the underlying failure, if any.
	Err error
}

// Config is the immutable configuration of a session.
type Config struct {
	// Address is the work location to geocode.
	Address string

	// RadiusMeters is the geofence radius (default: 20.5).
	RadiusMeters float64

	// TickInterval is the timer resolution (default: 1s).
	TickInterval time.Duration

	// Watch configures the position subscription.
	Watch position.WatchOptions

	// Clock drives ticks and timestamps. If nil, the real clock is used.
	Clock clockwork.Clock

	// Logger is the optional logger for operational output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// EventLog receives the session trace. If nil, events are discarded.
	EventLog eventlog.Logger

	// Metrics receives counters and gauges. If nil, nothing is recorded.
	Metrics metrics.Recorder
}

// DefaultConfig returns a configuration with default radius, tick interval
// and watch options. Address must still be set.
func DefaultConfig() Config {
	return Config{
		RadiusMeters: geo.DefaultRadiusMeters,
		TickInterval: schedule.DefaultInterval,
		Watch:        position.DefaultWatchOptions(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidConfig)
	}
	if math.IsNaN(c.RadiusMeters) || math.IsInf(c.RadiusMeters, 0) || c.RadiusMeters <= 0 {
		return fmt.Errorf("%w: radius must be positive", ErrInvalidConfig)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("%w: tick interval must be positive", ErrInvalidConfig)
	}
	if err := c.Watch.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Deps are the external collaborators of a session.
type Deps struct {
	Geocoder   geocode.Geocoder
	Permission permission.Gate
	Positions  position.Source
}

func (d Deps) validate() error {
	switch {
	case d.Geocoder == nil:
		return fmt.Errorf("%w: geocoder is required", ErrInvalidConfig)
	case d.Permission == nil:
		return fmt.Errorf("%w: permission gate is required", ErrInvalidConfig)
	case d.Positions == nil:
		return fmt.Errorf("%w: position source is required", ErrInvalidConfig)
	}
	return nil
}
