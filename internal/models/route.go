// ABOUTME: GeoPoint, RoutePointSequence, and EnrichedTrackpoint models.
// ABOUTME: Route sequences are read-only once loaded; enrichment copies.
package models

import "time"

// GeoPoint is one timestamped GPS sample from a route file.
type GeoPoint struct {
	Time            time.Time
	Latitude        float64
	Longitude       float64
	ElevationMeters float64
}

// RoutePointSequence is an ordered run of GeoPoints from a single route file.
// Points are strictly increasing by time. The sequence is shared read-only;
// the Name (route file base name) is its identity for claim tracking.
type RoutePointSequence struct {
	Name   string
	Points []GeoPoint
}

// StartTime returns the first point's time, the matching key against a
// workout's start time. Zero time if the sequence is empty.
func (r *RoutePointSequence) StartTime() time.Time {
	if len(r.Points) == 0 {
		return time.Time{}
	}
	return r.Points[0].Time
}

// EnrichedTrackpoint is a GeoPoint plus the optional heart rate carried over
// from the owning workout's aggregate.
type EnrichedTrackpoint struct {
	GeoPoint
	HeartRateBpm *int
}
