// ABOUTME: Classifies finished documents into output buckets and paths.
// ABOUTME: Heart-rate presence picks the root; start time picks year/month.
package output

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rsharman/hk2tcx/internal/models"
	"github.com/rsharman/hk2tcx/internal/tcx"
)

// NoHeartRateDir is the subtree for documents without a heart rate aggregate.
const NoHeartRateDir = "no_heart_rate"

// Classification is where a document belongs under the output root.
type Classification struct {
	HasHeartRate bool
	RelativeDir  string
	FileName     string
}

// Path returns the document's path relative to the output root.
func (c Classification) Path() string {
	return filepath.Join(c.RelativeDir, c.FileName)
}

// Classify derives a document's output bucket and date-partitioned path.
func Classify(doc *tcx.Document) Classification {
	start := doc.StartTime
	dir := filepath.Join(fmt.Sprintf("%d", start.Year()), fmt.Sprintf("%02d", int(start.Month())))
	if !doc.HasHeartRate {
		dir = filepath.Join(NoHeartRateDir, dir)
	}
	return Classification{
		HasHeartRate: doc.HasHeartRate,
		RelativeDir:  dir,
		FileName:     fmt.Sprintf("%s_%s.tcx", start.Format("2006-01-02_150405"), doc.Sport),
	}
}

// MatchesFilter reports whether a sport passes the optional activity filter.
// An empty filter passes everything; otherwise a case-insensitive substring
// match, so "run" selects Running.
func MatchesFilter(filter string, sport models.Sport) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(string(sport)), strings.ToLower(filter))
}
