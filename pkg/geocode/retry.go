package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
)

// ErrInvalidPolicy is returned by Policy.Validate.
var ErrInvalidPolicy = errors.New("invalid retry policy")

// BackoffMode selects how the retry delay grows.
type BackoffMode string

const (
	BackoffFixed       BackoffMode = "fixed"
	BackoffLinear      BackoffMode = "linear"
	BackoffExponential BackoffMode = "exponential"
)

// Policy holds retry settings for transient geocoding failures.
type Policy struct {
	Mode       BackoffMode   `yaml:"mode"`
	Initial    time.Duration `yaml:"initial"`
	Max        time.Duration `yaml:"max"`
	MaxRetries int           `yaml:"max_retries"`
}

// DefaultPolicy performs no retries: one geocoding call per session.
func DefaultPolicy() Policy {
	return Policy{Mode: BackoffExponential, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 0}
}

// Delay returns the wait before retry number n (1-based).
func (p Policy) Delay(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	if p.Initial <= 0 {
		return 0
	}
	d := p.Initial
	switch p.Mode {
	case BackoffFixed:
	case BackoffLinear:
		if time.Duration(n) > math.MaxInt64/p.Initial {
			return p.clamp(math.MaxInt64)
		}
		d = time.Duration(n) * p.Initial
	default:
		// Doubling stops at Max or before the shift overflows.
		for i := 1; i < n; i++ {
			if (p.Max > 0 && d >= p.Max) || d > math.MaxInt64>>1 {
				return p.clamp(math.MaxInt64)
			}
			d <<= 1
		}
	}
	return p.clamp(d)
}

func (p Policy) clamp(d time.Duration) time.Duration {
	if p.Max > 0 && d > p.Max {
		return p.Max
	}
	return d
}

// Validate checks the policy.
func (p Policy) Validate() error {
	switch p.Mode {
	case BackoffFixed, BackoffLinear, BackoffExponential:
	default:
		return fmt.Errorf("%w: unknown mode %q", ErrInvalidPolicy, p.Mode)
	}
	if p.MaxRetries < 0 {
		return fmt.Errorf("%w: negative max retries", ErrInvalidPolicy)
	}
	if p.MaxRetries > 0 && (p.Initial <= 0 || p.Max <= 0) {
		return fmt.Errorf("%w: delays must be positive", ErrInvalidPolicy)
	}
	return nil
}

// Retrying retries ErrUnavailable failures of the wrapped Geocoder.
type Retrying struct {
	next   Geocoder
	policy Policy
	clock  clockwork.Clock
	logger *slog.Logger
}

// NewRetrying wraps next. A nil clock uses the real clock; a nil logger disables logging.
func NewRetrying(next Geocoder, policy Policy, clock clockwork.Clock, logger *slog.Logger) (*Retrying, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Retrying{next: next, policy: policy, clock: clock, logger: logger}, nil
}

// Resolve calls the wrapped geocoder, retrying transient failures.
func (r *Retrying) Resolve(ctx context.Context, address string) (geo.GeoPoint, error) {
	for attempt := 0; ; attempt++ {
		p, err := r.next.Resolve(ctx, address)
		if err == nil || !errors.Is(err, ErrUnavailable) || attempt >= r.policy.MaxRetries {
			return p, err
		}

		delay := r.policy.Delay(attempt + 1)
		if r.logger != nil {
			r.logger.Warn("geocoding failed, retrying", "attempt", attempt+1, "delay", delay, "error", err)
		}

		select {
		case <-ctx.Done():
			return geo.GeoPoint{}, ctx.Err()
		case <-r.clock.After(delay):
		}
	}
}

var _ Geocoder = (*Retrying)(nil)
