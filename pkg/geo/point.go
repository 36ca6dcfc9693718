package geo

import (
	"errors"
	"fmt"
	"math"
)

// Geo errors.
var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidRadius     = errors.New("invalid geofence radius")
)

// DefaultRadiusMeters is the geofence radius used when none is configured.
const DefaultRadiusMeters = 20.5

// GeoPoint is a latitude/longitude pair in degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// Validate reports whether p holds finite, in-range coordinates.
func (p GeoPoint) Validate() error {
	if !isFinite(p.Latitude) || !isFinite(p.Longitude) {
		return fmt.Errorf("%w: non-finite value (%v, %v)", ErrInvalidCoordinate, p.Latitude, p.Longitude)
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinate, p.Latitude)
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinate, p.Longitude)
	}
	return nil
}

// String returns the point as "lat,lon" with six decimals.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Latitude, p.Longitude)
}

// Target is the circular geofence a session is bound to.
// It is created once per session and never modified.
type Target struct {
	Center       GeoPoint `json:"center" yaml:"center"`
	RadiusMeters float64  `json:"radius_meters" yaml:"radius_meters"`
}

// NewTarget validates center and radius and returns the geofence.
func NewTarget(center GeoPoint, radiusMeters float64) (Target, error) {
	if err := center.Validate(); err != nil {
		return Target{}, err
	}
	if !isFinite(radiusMeters) || radiusMeters <= 0 {
		return Target{}, fmt.Errorf("%w: %v", ErrInvalidRadius, radiusMeters)
	}
	return Target{Center: center, RadiusMeters: radiusMeters}, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
