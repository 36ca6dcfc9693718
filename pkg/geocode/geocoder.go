// Package geocode resolves the configured work address to coordinates.
//
// A session calls its Geocoder once at start-up to build the geofence. When
// resolution fails the geofence is never created and no position is ever
// evaluated.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/techb2bnew/GeoFencing-Demo-App/pkg/geo"
)

// Geocoding errors.
var (
	ErrEmptyAddress  = errors.New("address is empty")
	ErrNoResults     = errors.New("no geocoding results")
	ErrRequestDenied = errors.New("geocoding request denied")

	// ErrUnavailable marks transient failures (network, quota, server error)
	// that Retrying may retry.
	ErrUnavailable = errors.New("geocoding service unavailable")
)

// Geocoder resolves a free-form address to a point.
type Geocoder interface {
	Resolve(ctx context.Context, address string) (geo.GeoPoint, error)
}

// Func adapts a function to the Geocoder interface.
type Func func(ctx context.Context, address string) (geo.GeoPoint, error)

// Resolve calls f.
func (f Func) Resolve(ctx context.Context, address string) (geo.GeoPoint, error) {
	return f(ctx, address)
}

// Static resolves addresses from a fixed table. Lookup ignores case and
// surrounding whitespace.
type Static struct {
	entries map[string]geo.GeoPoint
}

// NewStatic creates a Static geocoder from address→point entries.
func NewStatic(entries map[string]geo.GeoPoint) *Static {
	s := &Static{entries: make(map[string]geo.GeoPoint, len(entries))}
	for addr, p := range entries {
		s.entries[normalize(addr)] = p
	}
	return s
}

// Resolve looks the address up.
func (s *Static) Resolve(ctx context.Context, address string) (geo.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return geo.GeoPoint{}, err
	}
	key := normalize(address)
	if key == "" {
		return geo.GeoPoint{}, ErrEmptyAddress
	}
	p, ok := s.entries[key]
	if !ok {
		return geo.GeoPoint{}, fmt.Errorf("%w for %q", ErrNoResults, address)
	}
	return p, nil
}

func normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

var (
	_ Geocoder = Func(nil)
	_ Geocoder = (*Static)(nil)
)
