package geo

import "math"

// EarthRadiusMeters is the mean Earth radius used by Distance.
const EarthRadiusMeters = 6371000

// Containment is the relation between the latest position and the geofence.
type Containment uint8

const (
	// ContainmentUnknown means no position has been evaluated yet.
	ContainmentUnknown Containment = iota

	// ContainmentInside means the latest position is within the radius.
	ContainmentInside

	// ContainmentOutside means the latest position is beyond the radius.
	ContainmentOutside
)

// String returns the containment name.
func (c Containment) String() string {
	switch c {
	case ContainmentUnknown:
		return "UNKNOWN"
	case ContainmentInside:
		return "INSIDE"
	case ContainmentOutside:
		return "OUTSIDE"
	default:
		return "INVALID"
	}
}

// Result is the outcome of evaluating a position against a Target.
type Result struct {
	DistanceMeters float64
	Contained      bool
}

// Containment maps the result onto Inside or Outside.
func (r Result) Containment() Containment {
	if r.Contained {
		return ContainmentInside
	}
	return ContainmentOutside
}

// Evaluate computes the distance from current to the target center and
// whether current lies inside the target (boundary inclusive).
func Evaluate(current GeoPoint, target Target) Result {
	d := Distance(current, target.Center)
	return Result{
		DistanceMeters: d,
		Contained:      d <= target.RadiusMeters,
	}
}

// Distance returns the haversine great-circle distance between a and b in meters.
func Distance(a, b GeoPoint) float64 {
	lat1 := toRad(a.Latitude)
	lat2 := toRad(b.Latitude)
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// Rounding can push h slightly outside [0, 1] near antipodes.
	h = math.Max(0, math.Min(1, h))

	return 2 * EarthRadiusMeters * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
