package config

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geocode"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/permission"
	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/position"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func validConfig() Config {
	cfg := Default()
	cfg.Timer.Address = "Phase 8B, Mohali"
	cfg.Geocoder.APIKey = "key"
	return cfg
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, geo.DefaultRadiusMeters, cfg.Timer.RadiusMeters)
	assert.Equal(t, time.Second, cfg.Timer.TickInterval)
	assert.Equal(t, ProviderGoogle, cfg.Geocoder.Provider)
	assert.Zero(t, cfg.Geocoder.Retry.MaxRetries)
	assert.Equal(t, SourceFeed, cfg.Position.Source)
	assert.Equal(t, "high", cfg.Position.Accuracy)
	assert.Zero(t, cfg.Position.DistanceFilterMeters)

	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig, "address is required")
	assert.NoError(t, validConfig().Validate())
}

func TestLoadYAML(t *testing.T) {
	t.Setenv("TEST_GEOCLOCK_KEY", "from-env")
	path := writeFile(t, "geoclock.yaml", `
timer:
  address: "Phase 8B, Mohali"
  radius_meters: 50
  tick_interval: 2s
geocoder:
  provider: google
  api_key: ${TEST_GEOCLOCK_KEY}
  retry:
    mode: fixed
    initial: 500ms
    max: 1s
    max_retries: 3
position:
  source: track
  accuracy: balanced
  distance_filter_meters: 5
  track_file: walk.yaml
permission:
  android_api_level: 29
  deny: [background_location]
logging:
  level: debug
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "Phase 8B, Mohali", cfg.Timer.Address)
	assert.Equal(t, 50.0, cfg.Timer.RadiusMeters)
	assert.Equal(t, 2*time.Second, cfg.Timer.TickInterval)
	assert.Equal(t, "from-env", cfg.Geocoder.APIKey)
	assert.Equal(t, geocode.BackoffFixed, cfg.Geocoder.Retry.Mode)
	assert.Equal(t, 3, cfg.Geocoder.Retry.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, cfg.Geocoder.Retry.Initial)
	assert.Equal(t, "walk.yaml", cfg.Position.TrackFile)
	assert.Equal(t, []permission.Scope{permission.ScopeBackgroundLocation}, cfg.Permission.Deny)

	// Untouched sections keep their defaults.
	assert.Equal(t, 10*time.Second, cfg.Geocoder.Timeout)
	assert.Equal(t, "nats://127.0.0.1:4222", cfg.Position.NATS.URL)

	sc, err := cfg.SessionConfig()
	require.NoError(t, err)
	assert.Equal(t, position.AccuracyBalanced, sc.Watch.Accuracy)
	assert.Equal(t, 5.0, sc.Watch.DistanceFilterMeters)

	level, err := cfg.Logging.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "timer: [unterminated"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		EnvAddress:        "Sector 17, Chandigarh",
		EnvRadius:         "30.5",
		EnvGoogleMapsKey:  "generic",
		EnvAPIKey:         "dedicated",
		EnvPositionSource: SourceNATS,
		EnvNATSURL:        "nats://nats:4222",
		EnvLogLevel:       "warn",
		EnvMetricsListen:  ":9100",
	}
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))

	assert.Equal(t, "Sector 17, Chandigarh", cfg.Timer.Address)
	assert.Equal(t, 30.5, cfg.Timer.RadiusMeters)
	assert.Equal(t, "dedicated", cfg.Geocoder.APIKey)
	assert.Equal(t, SourceNATS, cfg.Position.Source)
	assert.Equal(t, "nats://nats:4222", cfg.Position.NATS.URL)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, ":9100", cfg.Metrics.Listen)

	bad := Default()
	err := bad.ApplyEnv(func(k string) (string, bool) {
		if k == EnvRadius {
			return "wide", true
		}
		return "", false
	})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestApplyEnvFallbackKey(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) (string, bool) {
		if k == EnvGoogleMapsKey {
			return "generic", true
		}
		return "", false
	}))
	assert.Equal(t, "generic", cfg.Geocoder.APIKey)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"NegativeRadius", func(c *Config) { c.Timer.RadiusMeters = -1 }},
		{"ZeroTick", func(c *Config) { c.Timer.TickInterval = 0 }},
		{"MissingAPIKey", func(c *Config) { c.Geocoder.APIKey = "" }},
		{"UnknownProvider", func(c *Config) { c.Geocoder.Provider = "bing" }},
		{"EmptyStatic", func(c *Config) { c.Geocoder.Provider = ProviderStatic }},
		{"BadRetry", func(c *Config) { c.Geocoder.Retry.Mode = "random" }},
		{"UnknownSource", func(c *Config) { c.Position.Source = "gps" }},
		{"TrackWithoutFile", func(c *Config) { c.Position.Source = SourceTrack }},
		{"NATSWithoutSubject", func(c *Config) {
			c.Position.Source = SourceNATS
			c.Position.NATS.Subject = ""
		}},
		{"BadAccuracy", func(c *Config) { c.Position.Accuracy = "perfect" }},
		{"BadLevel", func(c *Config) { c.Logging.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadEnvFiles(t *testing.T) {
	t.Setenv(EnvAPIKey, "")
	require.NoError(t, os.Unsetenv(EnvAPIKey))
	t.Setenv(EnvAddress, "kept")

	path := writeFile(t, ".env", EnvAPIKey+"=from-dotenv\n"+EnvAddress+"=overridden\n")
	require.NoError(t, LoadEnvFiles(filepath.Join(t.TempDir(), "absent.env"), path))

	assert.Equal(t, "from-dotenv", os.Getenv(EnvAPIKey))
	assert.Equal(t, "kept", os.Getenv(EnvAddress))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Geocoder.APIKey)
}

func TestPermissionGate(t *testing.T) {
	cfg := validConfig()
	cfg.Permission.AndroidAPILevel = 33
	cfg.Permission.Deny = []permission.Scope{permission.ScopeBackgroundLocation}

	st, err := cfg.PermissionGate().Request(context.Background())
	require.NoError(t, err)
	assert.Equal(t, permission.Denied, st)

	cfg.Permission.AndroidAPILevel = 28
	st, err = cfg.PermissionGate().Request(context.Background())
	require.NoError(t, err)
	assert.Equal(t, permission.Granted, st)
}

func TestNewGeocoder(t *testing.T) {
	cfg := validConfig()
	cfg.Geocoder.Provider = ProviderStatic
	cfg.Geocoder.Static = map[string]geo.GeoPoint{
		"Phase 8B, Mohali": {Latitude: 30.7046, Longitude: 76.7179},
	}

	g, err := cfg.NewGeocoder(clockwork.NewFakeClock(), nil)
	require.NoError(t, err)
	p, err := g.Resolve(context.Background(), "phase 8b, mohali")
	require.NoError(t, err)
	assert.Equal(t, 30.7046, p.Latitude)

	cfg.Geocoder.Provider = ProviderGoogle
	_, err = cfg.NewGeocoder(nil, nil)
	require.NoError(t, err)

	cfg.Geocoder.APIKey = ""
	_, err = cfg.NewGeocoder(nil, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestConversionErrors(t *testing.T) {
	_, err := LoggingConfig{Level: "loud"}.SlogLevel()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := validConfig()
	cfg.Position.Accuracy = "perfect"
	_, err = cfg.SessionConfig()
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = validConfig()
	cfg.Timer.TickInterval = 0
	_, err = cfg.SessionConfig()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
