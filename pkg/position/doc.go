// Package position defines the device position source consumed by a session
// and provides in-process implementations.
//
// A Source produces a lazy, unbounded sequence of position Updates after
// Watch is called. Each Update carries either a Sample or an error reported
// by the provider. Cancel stops the subscription; it is idempotent and no
// Update is delivered to a consumer that stopped reading after Cancel.
//
// # Boundary Validation
//
// Samples with NaN, infinite or out-of-range coordinates are never delivered
// as samples. They are turned into an Update whose Err wraps
// ErrInvalidSample, so downstream geofence evaluation only ever sees finite
// coordinates.
//
// # Distance Filter
//
// When WatchOptions.DistanceFilterMeters is positive, samples closer than the
// filter distance to the previously delivered sample are dropped.
//
// # Implementations
//
//   - Feed: push-based source for interactive use and tests
//   - Track: replays a YAML track file at a fixed interval
//   - natsfeed.Source: subscribes to a NATS subject carrying JSON samples
package position
