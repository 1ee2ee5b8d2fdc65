// ABOUTME: WorkoutRecord model and Sport enum for parsed export entries.
// ABOUTME: Optional aggregates are pointers so absent values stay absent.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Sport is the output activity vocabulary. Anything the export uses that we
// don't recognize collapses to SportOther rather than being dropped.
type Sport string

const (
	SportRunning Sport = "Running"
	SportWalking Sport = "Walking"
	SportCycling Sport = "Cycling"
	SportOther   Sport = "Other"
)

// appleSports maps HealthKit workout activity types to the output vocabulary.
var appleSports = map[string]Sport{
	"HKWorkoutActivityTypeRunning": SportRunning,
	"HKWorkoutActivityTypeWalking": SportWalking,
	"HKWorkoutActivityTypeCycling": SportCycling,
}

// SportFromApple converts a HealthKit activity type identifier to a Sport.
func SportFromApple(appleType string) Sport {
	if s, ok := appleSports[appleType]; ok {
		return s
	}
	return SportOther
}

// HeartRateStats is a workout-level heart rate aggregate. The export never
// carries per-sample heart rate, only this summary.
type HeartRateStats struct {
	Avg float64
	Min int
	Max int
}

// WorkoutRecord is one workout parsed from the export. Immutable after the
// parser yields it.
type WorkoutRecord struct {
	ID              uuid.UUID
	Sport           Sport
	StartTime       time.Time
	EndTime         time.Time
	DurationSeconds *float64
	DistanceMeters  *float64
	Calories        *float64
	ElevationGainM  *float64
	HeartRate       *HeartRateStats
	SourceDevice    string
}

// NewWorkoutRecord creates a WorkoutRecord with a generated UUID.
func NewWorkoutRecord(sport Sport, start, end time.Time) *WorkoutRecord {
	return &WorkoutRecord{
		ID:        uuid.New(),
		Sport:     sport,
		StartTime: start,
		EndTime:   end,
	}
}

// HasHeartRate reports whether the workout carries a heart rate aggregate.
func (w *WorkoutRecord) HasHeartRate() bool {
	return w.HeartRate != nil
}
