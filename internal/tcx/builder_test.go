// ABOUTME: Tests for trackpoint synthesis and TCX document assembly.
// ABOUTME: Verifies heart rate pass-through, omitted aggregates, element order.
package tcx

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rsharman/hk2tcx/internal/models"
)

func testRoute(start time.Time, n int) *models.RoutePointSequence {
	seq := &models.RoutePointSequence{Name: "test.gpx"}
	for i := 0; i < n; i++ {
		seq.Points = append(seq.Points, models.GeoPoint{
			Time:            start.Add(time.Duration(i) * 10 * time.Second),
			Latitude:        51.44 + float64(i)*0.0005,
			Longitude:       -2.6 + float64(i)*0.0005,
			ElevationMeters: 100 + float64(i),
		})
	}
	return seq
}

func TestSynthesizeWithHeartRate(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	hr := &models.HeartRateStats{Avg: 150.7, Min: 120, Max: 180}

	points := Synthesize(testRoute(start, 3), hr)
	if len(points) != 3 {
		t.Fatalf("got %d points, want 3", len(points))
	}
	for i, p := range points {
		if p.HeartRateBpm == nil || *p.HeartRateBpm != 150 {
			t.Errorf("point %d heart rate = %v, want 150", i, p.HeartRateBpm)
		}
	}
	// Order preserved exactly.
	for i := 1; i < len(points); i++ {
		if points[i].Time.Before(points[i-1].Time) {
			t.Error("point order was not preserved")
		}
	}
}

func TestSynthesizeWithoutHeartRate(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	points := Synthesize(testRoute(start, 2), nil)
	for i, p := range points {
		if p.HeartRateBpm != nil {
			t.Errorf("point %d carries heart rate, want none", i)
		}
	}
}

func TestSynthesizeEmptyRoute(t *testing.T) {
	if got := Synthesize(nil, &models.HeartRateStats{Avg: 140}); len(got) != 0 {
		t.Errorf("got %d points for nil route, want 0", len(got))
	}
}

func TestBuildFullDocument(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	rec := models.NewWorkoutRecord(models.SportRunning, start, start.Add(30*time.Minute))
	dur, dist, kcal := 1800.0, 5000.0, 300.0
	rec.DurationSeconds = &dur
	rec.DistanceMeters = &dist
	rec.Calories = &kcal
	rec.HeartRate = &models.HeartRateStats{Avg: 150, Min: 120, Max: 180}

	doc := Build(rec, Synthesize(testRoute(start, 3), rec.HeartRate))

	if !doc.HasHeartRate {
		t.Error("expected HasHeartRate")
	}
	if doc.TimeAnomalies != 0 {
		t.Errorf("TimeAnomalies = %d, want 0", doc.TimeAnomalies)
	}

	act := doc.TCX.Activities.Activity[0]
	if act.Sport != "Running" {
		t.Errorf("Sport = %s, want Running", act.Sport)
	}
	if act.ID != "2024-01-15T10:00:00.000000Z" {
		t.Errorf("Id = %s", act.ID)
	}
	if act.Lap.TotalTimeSeconds == nil || *act.Lap.TotalTimeSeconds != 1800 {
		t.Errorf("TotalTimeSeconds = %v, want 1800", act.Lap.TotalTimeSeconds)
	}
	if act.Lap.AverageHeartRate == nil || act.Lap.AverageHeartRate.Value != 150 {
		t.Error("expected average heart rate 150 to pass through unchanged")
	}
	if act.Lap.MaximumHeartRate == nil || act.Lap.MaximumHeartRate.Value != 180 {
		t.Error("expected maximum heart rate 180")
	}
	if act.Lap.Track == nil || len(act.Lap.Track.Trackpoints) != 3 {
		t.Fatal("expected 3 trackpoints")
	}
	for _, tp := range act.Lap.Track.Trackpoints {
		if tp.HeartRateBpm == nil || tp.HeartRateBpm.Value != 150 {
			t.Errorf("trackpoint heart rate = %v, want 150", tp.HeartRateBpm)
		}
	}
	if act.Creator.XSIType != "Device_t" || act.Creator.Name != "Apple Watch" {
		t.Errorf("Creator = %+v", act.Creator)
	}
}

func TestBuildOmitsAbsentAggregates(t *testing.T) {
	start := time.Date(2024, 1, 16, 13, 15, 0, 0, time.UTC)
	rec := models.NewWorkoutRecord(models.SportWalking, start, start.Add(45*time.Minute))

	doc := Build(rec, nil)
	lap := doc.TCX.Activities.Activity[0].Lap

	if lap.DistanceMeters != nil || lap.Calories != nil {
		t.Error("absent aggregates must be omitted, not zeroed")
	}
	if lap.AverageHeartRate != nil || lap.MaximumHeartRate != nil {
		t.Error("no heart rate elements expected")
	}
	if lap.Track != nil {
		t.Error("no Track element expected for an empty route")
	}

	var buf bytes.Buffer
	if err := doc.TCX.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<DistanceMeters>") || strings.Contains(out, "<Calories>") {
		t.Error("serialized output contains fabricated aggregates")
	}
}

func TestBuildElementOrdering(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	rec := models.NewWorkoutRecord(models.SportRunning, start, start.Add(30*time.Minute))
	dur := 1800.0
	rec.DurationSeconds = &dur
	rec.HeartRate = &models.HeartRateStats{Avg: 150, Min: 120, Max: 180}

	var buf bytes.Buffer
	doc := Build(rec, Synthesize(testRoute(start, 2), rec.HeartRate))
	if err := doc.TCX.Encode(&buf); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out := buf.String()

	// Aggregates before the trackpoint list.
	if strings.Index(out, "<AverageHeartRateBpm>") > strings.Index(out, "<Track>") {
		t.Error("lap aggregates must precede the Track element")
	}
	// Position before the optional heart rate within a trackpoint.
	if strings.Index(out, "<Position>") > strings.Index(out, "<HeartRateBpm>") {
		t.Error("Position must precede HeartRateBpm within a trackpoint")
	}
	if !strings.Contains(out, `xmlns="`+tcxNamespace+`"`) {
		t.Error("missing TCX namespace declaration")
	}
}

func TestBuildCountsTimeAnomalies(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	rec := models.NewWorkoutRecord(models.SportRunning, start, start.Add(time.Minute))

	// Second and third points land after the workout ends.
	doc := Build(rec, Synthesize(testRoute(start.Add(55*time.Second), 3), nil))
	if doc.TimeAnomalies != 2 {
		t.Errorf("TimeAnomalies = %d, want 2", doc.TimeAnomalies)
	}
	// Still built, still carries every point.
	if len(doc.TCX.Activities.Activity[0].Lap.Track.Trackpoints) != 3 {
		t.Error("out-of-window points must not be dropped")
	}
}
