// ABOUTME: Assembles one TCX activity document per workout.
// ABOUTME: Aggregates precede the track; absent aggregates are omitted.
package tcx

import (
	"time"

	"github.com/rsharman/hk2tcx/internal/models"
)

// Document is one finished activity document plus the workout-level facts the
// output planner classifies on.
type Document struct {
	Sport        models.Sport
	StartTime    time.Time
	HasHeartRate bool

	// TimeAnomalies counts trackpoints whose time falls outside the
	// workout's [start, end] window. Noisy source data, not a failure;
	// surfaced in the run summary.
	TimeAnomalies int

	TCX *TrainingCenterDatabase
}

// Build assembles the TCX document for a workout and its synthesized
// trackpoints. An empty trackpoint slice produces a document without a Track
// element, which is how GPS-less (indoor) workouts are emitted.
func Build(rec *models.WorkoutRecord, points []models.EnrichedTrackpoint) *Document {
	startStr := rec.StartTime.UTC().Format(timeLayout)

	lap := Lap{
		StartTime:        startStr,
		TotalTimeSeconds: rec.DurationSeconds,
		DistanceMeters:   rec.DistanceMeters,
	}
	if rec.Calories != nil {
		kcal := int(*rec.Calories)
		lap.Calories = &kcal
	}
	if rec.HeartRate != nil {
		lap.AverageHeartRate = &HeartRate{Value: int(rec.HeartRate.Avg)}
		lap.MaximumHeartRate = &HeartRate{Value: rec.HeartRate.Max}
	}

	anomalies := 0
	if len(points) > 0 {
		track := &Track{Trackpoints: make([]Trackpoint, 0, len(points))}
		for _, p := range points {
			if p.Time.Before(rec.StartTime) || p.Time.After(rec.EndTime) {
				anomalies++
			}
			tp := Trackpoint{
				Time: p.Time.UTC().Format(timeLayout),
				Position: Position{
					LatitudeDegrees:  p.Latitude,
					LongitudeDegrees: p.Longitude,
				},
				AltitudeMeters: p.ElevationMeters,
			}
			if p.HeartRateBpm != nil {
				tp.HeartRateBpm = &HeartRate{Value: *p.HeartRateBpm}
			}
			track.Trackpoints = append(track.Trackpoints, tp)
		}
		lap.Track = track
	}

	tcx := &TrainingCenterDatabase{
		Xmlns:          tcxNamespace,
		XmlnsXSI:       xsiNamespace,
		SchemaLocation: schemaLocation,
		Activities: Activities{
			Activity: []Activity{{
				Sport: string(rec.Sport),
				ID:    startStr,
				Lap:   lap,
				Creator: Creator{
					XSIType: "Device_t",
					Name:    "Apple Watch",
				},
			}},
		},
	}

	return &Document{
		Sport:         rec.Sport,
		StartTime:     rec.StartTime,
		HasHeartRate:  rec.HasHeartRate(),
		TimeAnomalies: anomalies,
		TCX:           tcx,
	}
}
