// ABOUTME: Merges a route's points with a workout's heart rate aggregate.
// ABOUTME: Point order and count pass through untouched; no resampling.
package tcx

import "github.com/rsharman/hk2tcx/internal/models"

// Synthesize produces the enriched trackpoint sequence for one workout. When
// hr is present every point carries the workout average verbatim; the export
// has no per-sample heart rate to do better with. A nil route yields an empty
// sequence.
func Synthesize(route *models.RoutePointSequence, hr *models.HeartRateStats) []models.EnrichedTrackpoint {
	if route == nil || len(route.Points) == 0 {
		return nil
	}

	var bpm *int
	if hr != nil {
		v := int(hr.Avg)
		bpm = &v
	}

	points := make([]models.EnrichedTrackpoint, len(route.Points))
	for i, p := range route.Points {
		points[i] = models.EnrichedTrackpoint{GeoPoint: p, HeartRateBpm: bpm}
	}
	return points
}
