// ABOUTME: Streaming parser for the Apple Health export.xml workout list.
// ABOUTME: Yields WorkoutRecords lazily, filtering non-Apple-Watch sources.
package export

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rsharman/hk2tcx/internal/models"
)

// ErrParse marks a structurally invalid export document. Parse errors wrap
// this sentinel so callers can treat them as fatal.
var ErrParse = errors.New("export: invalid document")

// DeviceSignature identifies the supported recording device. Workouts whose
// sourceName does not contain it are excluded, not errored.
const DeviceSignature = "Apple Watch"

// appleTimeLayout matches export timestamps like "2024-01-15 10:00:00 +0000".
const appleTimeLayout = "2006-01-02 15:04:05 -0700"

// Stats counts what the parser has seen so far. Counter semantics:
// Found >= Supported + Excluded + Malformed, and a record is Supported only
// after it survived both the device filter and validation.
type Stats struct {
	Found     int
	Supported int
	Excluded  int
	Malformed int
}

// Parser streams WorkoutRecords out of an export.xml reader. It is a single
// forward pass; re-parsing requires a fresh reader.
type Parser struct {
	dec      *xml.Decoder
	stats    Stats
	warnings []string
}

// NewParser creates a Parser reading from r.
func NewParser(r io.Reader) *Parser {
	return &Parser{dec: xml.NewDecoder(r)}
}

// Stats returns the running counters.
func (p *Parser) Stats() Stats {
	return p.stats
}

// Warnings returns the per-record skip warnings accumulated so far.
func (p *Parser) Warnings() []string {
	return p.warnings
}

// Next returns the next supported workout, io.EOF when the document is
// exhausted, or an error wrapping ErrParse when the markup itself is broken.
// Excluded and malformed entries are consumed internally and counted.
func (p *Parser) Next() (*models.WorkoutRecord, error) {
	for {
		tok, err := p.dec.Token()
		if err == io.EOF {
			return nil, io.EOF
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "Workout" {
			continue
		}

		var raw xmlWorkout
		if err := p.dec.DecodeElement(&raw, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		p.stats.Found++

		if !strings.Contains(raw.SourceName, DeviceSignature) {
			p.stats.Excluded++
			continue
		}

		rec, err := raw.toRecord()
		if err != nil {
			p.stats.Malformed++
			p.warnings = append(p.warnings, fmt.Sprintf("skipping workout (source=%q start=%q): %v", raw.SourceName, raw.StartDate, err))
			continue
		}

		p.stats.Supported++
		return rec, nil
	}
}

// xmlWorkout mirrors one <Workout> element of the export.
type xmlWorkout struct {
	ActivityType string         `xml:"workoutActivityType,attr"`
	Duration     string         `xml:"duration,attr"`
	DurationUnit string         `xml:"durationUnit,attr"`
	SourceName   string         `xml:"sourceName,attr"`
	StartDate    string         `xml:"startDate,attr"`
	EndDate      string         `xml:"endDate,attr"`
	Statistics   []xmlStatistic `xml:"WorkoutStatistics"`
	Metadata     []xmlMetadata  `xml:"MetadataEntry"`
}

type xmlStatistic struct {
	Type    string `xml:"type,attr"`
	Average string `xml:"average,attr"`
	Minimum string `xml:"minimum,attr"`
	Maximum string `xml:"maximum,attr"`
	Sum     string `xml:"sum,attr"`
	Unit    string `xml:"unit,attr"`
}

type xmlMetadata struct {
	Key   string `xml:"key,attr"`
	Value string `xml:"value,attr"`
}

func (x *xmlWorkout) toRecord() (*models.WorkoutRecord, error) {
	if x.StartDate == "" || x.EndDate == "" {
		return nil, errors.New("missing start or end date")
	}
	start, err := time.Parse(appleTimeLayout, x.StartDate)
	if err != nil {
		return nil, fmt.Errorf("bad start date: %v", err)
	}
	end, err := time.Parse(appleTimeLayout, x.EndDate)
	if err != nil {
		return nil, fmt.Errorf("bad end date: %v", err)
	}
	if !end.After(start) {
		return nil, errors.New("end time not after start time")
	}

	rec := models.NewWorkoutRecord(models.SportFromApple(x.ActivityType), start, end)
	rec.SourceDevice = x.SourceName

	if secs, ok := x.durationSeconds(); ok {
		rec.DurationSeconds = &secs
	}

	for _, stat := range x.Statistics {
		switch {
		case strings.Contains(stat.Type, "HeartRate"):
			rec.HeartRate = parseHeartRate(stat)
		case strings.Contains(stat.Type, "Distance"):
			if m, ok := parseDistanceMeters(stat); ok {
				rec.DistanceMeters = &m
			}
		case strings.Contains(stat.Type, "ActiveEnergyBurned"):
			if kcal, err := strconv.ParseFloat(stat.Sum, 64); err == nil {
				rec.Calories = &kcal
			}
		}
	}

	for _, md := range x.Metadata {
		if md.Key == "HKElevationAscended" {
			if cm, err := strconv.ParseFloat(strings.TrimSuffix(md.Value, " cm"), 64); err == nil {
				gain := cm / 100
				rec.ElevationGainM = &gain
			}
		}
	}

	return rec, nil
}

func (x *xmlWorkout) durationSeconds() (float64, bool) {
	if x.Duration == "" {
		return 0, false
	}
	d, err := strconv.ParseFloat(x.Duration, 64)
	if err != nil || d < 0 {
		return 0, false
	}
	switch x.DurationUnit {
	case "s", "sec":
		return d, true
	default:
		// The export records duration in minutes.
		return d * 60, true
	}
}

func parseHeartRate(stat xmlStatistic) *models.HeartRateStats {
	avg, err := strconv.ParseFloat(stat.Average, 64)
	if err != nil {
		return nil
	}
	hr := &models.HeartRateStats{Avg: avg}
	if v, err := strconv.Atoi(stat.Minimum); err == nil {
		hr.Min = v
	}
	if v, err := strconv.Atoi(stat.Maximum); err == nil {
		hr.Max = v
	}
	return hr
}

func parseDistanceMeters(stat xmlStatistic) (float64, bool) {
	sum, err := strconv.ParseFloat(stat.Sum, 64)
	if err != nil || sum < 0 {
		return 0, false
	}
	switch stat.Unit {
	case "m":
		return sum, true
	case "mi":
		return sum * 1609.344, true
	default:
		// The export reports walking/running/cycling distance in km.
		return sum * 1000, true
	}
}
