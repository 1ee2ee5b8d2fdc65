// ABOUTME: TCX (Training Center Database v2) schema structs for encoding/xml.
// ABOUTME: Field order matters: consuming platforms require schema ordering.
package tcx

import (
	"encoding/xml"
	"fmt"
	"io"
)

const (
	tcxNamespace   = "http://www.garmin.com/xmlschemas/TrainingCenterDatabase/v2"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = tcxNamespace + " http://www.garmin.com/xmlschemas/TrainingCenterDatabasev2.xsd"

	// timeLayout is the timestamp form Garmin Connect accepts on import.
	timeLayout = "2006-01-02T15:04:05.000000Z"
)

// TrainingCenterDatabase is the TCX document root.
type TrainingCenterDatabase struct {
	XMLName        xml.Name   `xml:"TrainingCenterDatabase"`
	Xmlns          string     `xml:"xmlns,attr"`
	XmlnsXSI       string     `xml:"xmlns:xsi,attr"`
	SchemaLocation string     `xml:"xsi:schemaLocation,attr"`
	Activities     Activities `xml:"Activities"`
}

type Activities struct {
	Activity []Activity `xml:"Activity"`
}

type Activity struct {
	Sport   string  `xml:"Sport,attr"`
	ID      string  `xml:"Id"`
	Lap     Lap     `xml:"Lap"`
	Creator Creator `xml:"Creator"`
}

// Lap holds the workout aggregates followed by the track. Optional aggregates
// are pointers: absent in the source means absent in the output, never zero.
type Lap struct {
	StartTime        string     `xml:"StartTime,attr"`
	TotalTimeSeconds *float64   `xml:"TotalTimeSeconds,omitempty"`
	DistanceMeters   *float64   `xml:"DistanceMeters,omitempty"`
	Calories         *int       `xml:"Calories,omitempty"`
	AverageHeartRate *HeartRate `xml:"AverageHeartRateBpm,omitempty"`
	MaximumHeartRate *HeartRate `xml:"MaximumHeartRateBpm,omitempty"`
	Track            *Track     `xml:"Track,omitempty"`
}

type HeartRate struct {
	Value int `xml:"Value"`
}

type Track struct {
	Trackpoints []Trackpoint `xml:"Trackpoint"`
}

// Trackpoint keeps Position ahead of HeartRateBpm, as the schema requires.
type Trackpoint struct {
	Time           string     `xml:"Time"`
	Position       Position   `xml:"Position"`
	AltitudeMeters float64    `xml:"AltitudeMeters"`
	HeartRateBpm   *HeartRate `xml:"HeartRateBpm,omitempty"`
}

type Position struct {
	LatitudeDegrees  float64 `xml:"LatitudeDegrees"`
	LongitudeDegrees float64 `xml:"LongitudeDegrees"`
}

type Creator struct {
	XSIType   string `xml:"xsi:type,attr"`
	Name      string `xml:"Name"`
	UnitID    int    `xml:"UnitId"`
	ProductID int    `xml:"ProductID"`
}

// Encode writes the document as indented XML with a declaration header.
func (t *TrainingCenterDatabase) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode tcx: %w", err)
	}
	return enc.Close()
}
