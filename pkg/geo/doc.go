// Package geo implements geofence containment for a single circular area.
//
// A geofence is a circle on the Earth's surface defined by a center point and
// a radius in meters. Distances are great-circle distances computed with the
// haversine formula on a sphere of radius 6,371,000 meters.
//
// # Containment
//
// A point is inside the geofence when its distance to the center is less than
// or equal to the radius. The boundary is inclusive: a point exactly on the
// radius counts as inside.
//
// # Numeric Safety
//
// Evaluate is total for finite inputs. The intermediate haversine term is
// clamped to [0, 1] so antipodal and pole-adjacent coordinates never yield
// NaN. Non-finite coordinates are rejected by GeoPoint.Validate before they
// reach the evaluator.
package geo
