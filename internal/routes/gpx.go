// ABOUTME: Loads workout-routes GPX files into RoutePointSequences.
// ABOUTME: Flattens tracks and segments; point order is preserved as recorded.
package routes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rsharman/hk2tcx/internal/models"
	"github.com/thcyron/go-gpx"
)

// LoadDir reads every .gpx file under dir into a RoutePointSequence, sorted
// by file name. A missing directory is not an error: exports without any
// outdoor workout simply have no workout-routes folder. Unreadable or empty
// route files are skipped and reported in the returned warnings.
func LoadDir(dir string) ([]*models.RoutePointSequence, []string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read routes dir: %w", err)
	}

	var seqs []*models.RoutePointSequence
	var warnings []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".gpx") {
			continue
		}
		seq, err := LoadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping route %s: %v", entry.Name(), err))
			continue
		}
		if len(seq.Points) == 0 {
			warnings = append(warnings, fmt.Sprintf("skipping route %s: no timestamped points", entry.Name()))
			continue
		}
		seqs = append(seqs, seq)
	}

	sort.Slice(seqs, func(i, j int) bool { return seqs[i].Name < seqs[j].Name })
	return seqs, warnings, nil
}

// LoadFile parses a single GPX file into a RoutePointSequence.
func LoadFile(path string) (*models.RoutePointSequence, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := gpx.NewDecoder(f).Decode()
	if err != nil {
		return nil, fmt.Errorf("decode gpx: %w", err)
	}

	seq := &models.RoutePointSequence{Name: filepath.Base(path)}
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			for _, point := range segment.Points {
				if point.Time.IsZero() {
					// A sample without a timestamp can't be placed on the
					// activity timeline.
					continue
				}
				seq.Points = append(seq.Points, models.GeoPoint{
					Time:            point.Time,
					Latitude:        point.Latitude,
					Longitude:       point.Longitude,
					ElevationMeters: point.Elevation,
				})
			}
		}
	}
	return seq, nil
}
