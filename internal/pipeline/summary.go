// ABOUTME: Run summary counters and the machine-readable report export.
// ABOUTME: Reports serialize to JSON or YAML for downstream review.
package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Summary aggregates the outcome of one conversion run.
type Summary struct {
	Found               int      `json:"found" yaml:"found"`
	Supported           int      `json:"supported" yaml:"supported"`
	Excluded            int      `json:"excluded" yaml:"excluded"`
	Malformed           int      `json:"malformed" yaml:"malformed"`
	FilteredOut         int      `json:"filtered_out" yaml:"filtered_out"`
	MatchedWithRoute    int      `json:"matched_with_route" yaml:"matched_with_route"`
	MatchedWithoutRoute int      `json:"matched_without_route" yaml:"matched_without_route"`
	TimeAnomalies       int      `json:"time_anomalies" yaml:"time_anomalies"`
	Written             int      `json:"written" yaml:"written"`
	RoutesAvailable     int      `json:"routes_available" yaml:"routes_available"`
	OutputDir           string   `json:"output_dir" yaml:"output_dir"`
	Warnings            []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// report wraps a Summary with run metadata, mirroring the export envelope
// shape used elsewhere in this tool's ecosystem.
type report struct {
	Tool        string    `json:"tool" yaml:"tool"`
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`
	Summary     *Summary  `json:"summary" yaml:"summary"`
}

// WriteReport writes the summary to path in the given format ("json" or
// "yaml").
func (s *Summary) WriteReport(path, format string) error {
	r := report{Tool: "hk2tcx", GeneratedAt: time.Now(), Summary: s}

	var data []byte
	var err error
	switch format {
	case "json":
		data, err = json.MarshalIndent(r, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(r)
	default:
		return fmt.Errorf("unknown report format: %s (use json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
