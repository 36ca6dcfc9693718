// Package config loads the geoclock configuration.
//
// Configuration is read from a YAML file, environment references inside the
// file are expanded, and GEOCLOCK_* variables override individual fields.
// A .env file may supply the geocoder API key during development.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"gopkg.in/yaml.v3"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geocode"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/permission"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/position"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/position/natsfeed"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/schedule"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/session"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Geocoder providers.
const (
	ProviderGoogle = "google"
	ProviderStatic = "static"
)

// Position sources.
const (
	SourceFeed  = "feed"
	SourceTrack = "track"
	SourceNATS  = "nats"
)

// Config is the complete geoclock configuration.
type Config struct {
	Timer      TimerConfig      `yaml:"timer"`
	Geocoder   GeocoderConfig   `yaml:"geocoder"`
	Position   PositionConfig   `yaml:"position"`
	Permission PermissionConfig `yaml:"permission"`
	Logging    LoggingConfig    `yaml:"logging"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Push       PushConfig       `yaml:"push"`
}

// TimerConfig describes the geofence and tick rate.
type TimerConfig struct {
	Address      string        `yaml:"address"`
	RadiusMeters float64       `yaml:"radius_meters"`
	TickInterval time.Duration `yaml:"tick_interval"`
}

// GeocoderConfig selects and configures the geocoder.
type GeocoderConfig struct {
	Provider string         `yaml:"provider"`
	APIKey   string         `yaml:"api_key"`
	Endpoint string         `yaml:"endpoint,omitempty"`
	Region   string         `yaml:"region,omitempty"`
	Timeout  time.Duration  `yaml:"timeout"`
	Retry    geocode.Policy `yaml:"retry"`

	// Static maps addresses to points for the static provider.
	Static map[string]geo.GeoPoint `yaml:"static,omitempty"`
}

// PositionConfig selects and configures the position source.
type PositionConfig struct {
	Source               string        `yaml:"source"`
	Accuracy             string        `yaml:"accuracy"`
	DistanceFilterMeters float64       `yaml:"distance_filter_meters"`
	Interval             time.Duration `yaml:"interval"`
	TrackFile            string        `yaml:"track_file,omitempty"`
	NATS                 NATSConfig    `yaml:"nats"`
}

// NATSConfig configures the NATS position feed.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// PermissionConfig simulates the platform permission prompt.
type PermissionConfig struct {
	// AndroidAPILevel selects the requested scopes (background from 29).
	AndroidAPILevel int `yaml:"android_api_level"`

	// Deny lists scopes the simulated user refuses.
	Deny []permission.Scope `yaml:"deny,omitempty"`
}

// LoggingConfig configures operational logging and the event trace.
type LoggingConfig struct {
	Level    string `yaml:"level"`
	EventLog string `yaml:"event_log,omitempty"`
}

// MetricsConfig configures the Prometheus endpoint. An empty Listen disables it.
type MetricsConfig struct {
	Listen string `yaml:"listen,omitempty"`
}

// PushConfig configures push registration at start-up.
type PushConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Default returns the built-in configuration. Timer.Address is empty and
// must be provided.
func Default() Config {
	watch := position.DefaultWatchOptions()
	return Config{
		Timer: TimerConfig{
			RadiusMeters: geo.DefaultRadiusMeters,
			TickInterval: schedule.DefaultInterval,
		},
		Geocoder: GeocoderConfig{
			Provider: ProviderGoogle,
			Timeout:  10 * time.Second,
			Retry:    geocode.DefaultPolicy(),
		},
		Position: PositionConfig{
			Source:               SourceFeed,
			Accuracy:             watch.Accuracy.String(),
			DistanceFilterMeters: watch.DistanceFilterMeters,
			Interval:             watch.Interval,
			NATS: NATSConfig{
				URL:     "nats://127.0.0.1:4222",
				Subject: natsfeed.DefaultSubject,
			},
		},
		Permission: PermissionConfig{AndroidAPILevel: 33},
		Logging:    LoggingConfig{Level: "info"},
		Push:       PushConfig{Enabled: true},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path yields the defaults with overrides applied.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		expanded := os.ExpandEnv(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadEnvFiles loads KEY=VALUE files into the process environment without
// overriding variables that are already set. Missing files are skipped.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Environment variables read by ApplyEnv.
const (
	EnvAddress        = "GEOCLOCK_ADDRESS"
	EnvRadius         = "GEOCLOCK_RADIUS_METERS"
	EnvAPIKey         = "GEOCLOCK_GEOCODER_API_KEY"
	EnvGoogleMapsKey  = "GOOGLE_MAPS_API_KEY"
	EnvPositionSource = "GEOCLOCK_POSITION_SOURCE"
	EnvNATSURL        = "GEOCLOCK_NATS_URL"
	EnvLogLevel       = "GEOCLOCK_LOG_LEVEL"
	EnvEventLog       = "GEOCLOCK_EVENT_LOG"
	EnvMetricsListen  = "GEOCLOCK_METRICS_LISTEN"
)

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	str(EnvAddress, &c.Timer.Address)
	if v, ok := lookup(EnvRadius); ok && v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, EnvRadius, err)
		}
		c.Timer.RadiusMeters = r
	}
	// The generic Maps key is a fallback for the dedicated one.
	str(EnvGoogleMapsKey, &c.Geocoder.APIKey)
	str(EnvAPIKey, &c.Geocoder.APIKey)
	str(EnvPositionSource, &c.Position.Source)
	str(EnvNATSURL, &c.Position.NATS.URL)
	str(EnvLogLevel, &c.Logging.Level)
	str(EnvEventLog, &c.Logging.EventLog)
	str(EnvMetricsListen, &c.Metrics.Listen)
	return nil
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if _, err := c.SessionConfig(); err != nil {
		return err
	}
	if err := c.Geocoder.Retry.Validate(); err != nil {
		return fmt.Errorf("%w: geocoder.retry: %v", ErrInvalidConfig, err)
	}

	switch c.Geocoder.Provider {
	case ProviderGoogle:
		if c.Geocoder.APIKey == "" {
			return fmt.Errorf("%w: geocoder.api_key is required for %s", ErrInvalidConfig, ProviderGoogle)
		}
	case ProviderStatic:
		if len(c.Geocoder.Static) == 0 {
			return fmt.Errorf("%w: geocoder.static has no entries", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown geocoder provider %q", ErrInvalidConfig, c.Geocoder.Provider)
	}

	switch c.Position.Source {
	case SourceFeed:
	case SourceTrack:
		if c.Position.TrackFile == "" {
			return fmt.Errorf("%w: position.track_file is required for %s", ErrInvalidConfig, SourceTrack)
		}
	case SourceNATS:
		if c.Position.NATS.URL == "" || c.Position.NATS.Subject == "" {
			return fmt.Errorf("%w: position.nats needs url and subject", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown position source %q", ErrInvalidConfig, c.Position.Source)
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// WatchOptions converts the position section.
func (c Config) WatchOptions() (position.WatchOptions, error) {
	acc, err := position.ParseAccuracy(strings.ToLower(c.Position.Accuracy))
	if err != nil {
		return position.WatchOptions{}, fmt.Errorf("%w: position.accuracy %q", ErrInvalidConfig, c.Position.Accuracy)
	}
	opts := position.WatchOptions{
		Accuracy:             acc,
		DistanceFilterMeters: c.Position.DistanceFilterMeters,
		Interval:             c.Position.Interval,
	}
	if err := opts.Validate(); err != nil {
		return position.WatchOptions{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return opts, nil
}

// SessionConfig returns the session configuration without runtime
// collaborators (clock, loggers, metrics).
func (c Config) SessionConfig() (session.Config, error) {
	watch, err := c.WatchOptions()
	if err != nil {
		return session.Config{}, err
	}
	sc := session.Config{
		Address:      c.Timer.Address,
		RadiusMeters: c.Timer.RadiusMeters,
		TickInterval: c.Timer.TickInterval,
		Watch:        watch,
	}
	if err := sc.Validate(); err != nil {
		return session.Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return sc, nil
}

// PermissionGate builds the simulated permission gate.
func (c Config) PermissionGate() permission.Gate {
	answers := permission.Answers{}
	for _, s := range c.Permission.Deny {
		answers[s] = permission.Denied
	}
	return permission.Scopes{
		Prompter: answers,
		Required: permission.AndroidScopes(c.Permission.AndroidAPILevel),
	}
}

// SlogLevel parses Logging.Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, l.Level)
	}
	return level, nil
}

// NewGeocoder builds the configured geocoder wrapped in the retry policy.
// A nil clock uses the real clock; a nil logger disables retry logging.
func (c Config) NewGeocoder(clock clockwork.Clock, logger *slog.Logger) (geocode.Geocoder, error) {
	var base geocode.Geocoder
	switch c.Geocoder.Provider {
	case ProviderStatic:
		base = geocode.NewStatic(c.Geocoder.Static)
	case ProviderGoogle:
		g, err := geocode.NewGoogleClient(geocode.GoogleConfig{
			APIKey:   c.Geocoder.APIKey,
			Endpoint: c.Geocoder.Endpoint,
			Timeout:  c.Geocoder.Timeout,
			Region:   c.Geocoder.Region,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		base = g
	default:
		return nil, fmt.Errorf("%w: unknown geocoder provider %q", ErrInvalidConfig, c.Geocoder.Provider)
	}
	return geocode.NewRetrying(base, c.Geocoder.Retry, clock, logger)
}
