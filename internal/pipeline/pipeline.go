// ABOUTME: Orchestrates parse → resolve → synthesize → build → classify → write.
// ABOUTME: Bounded worker pool; the route claim registry is the only shared state.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rsharman/hk2tcx/internal/export"
	"github.com/rsharman/hk2tcx/internal/models"
	"github.com/rsharman/hk2tcx/internal/output"
	"github.com/rsharman/hk2tcx/internal/routes"
	"github.com/rsharman/hk2tcx/internal/tcx"
	"golang.org/x/sync/errgroup"
)

// Options configures one conversion run.
type Options struct {
	// ExportDir holds export.xml and the workout-routes directory.
	ExportDir string

	// OutputDir is the output root. Defaults to ExportDir/tcx_files.
	OutputDir string

	// ActivityFilter, when non-empty, keeps only workouts whose sport
	// matches it (case-insensitive substring).
	ActivityFilter string

	// Tolerance is the route-matching window. Zero means the default.
	Tolerance time.Duration

	// Workers bounds the pool. Zero means 4.
	Workers int

	// Log receives per-workout progress lines. Nil disables them.
	Log func(format string, args ...any)
}

// Run converts every supported workout in the export. Per-record problems
// are counted into the Summary and never abort the batch; only an unreadable
// source or a failed write returns an error.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	exportPath := filepath.Join(opts.ExportDir, "export.xml")
	f, err := os.Open(exportPath)
	if err != nil {
		return nil, fmt.Errorf("open export: %w", err)
	}
	defer f.Close()

	outDir := opts.OutputDir
	if outDir == "" {
		outDir = filepath.Join(opts.ExportDir, "tcx_files")
	}
	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = routes.DefaultTolerance
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	logf := opts.Log
	if logf == nil {
		logf = func(string, ...any) {}
	}

	seqs, routeWarnings, err := routes.LoadDir(filepath.Join(opts.ExportDir, "workout-routes"))
	if err != nil {
		return nil, err
	}
	registry := routes.NewRegistry(seqs)
	writer := output.NewWriter(outDir)

	summary := &Summary{OutputDir: outDir, RoutesAvailable: registry.Available()}
	summary.Warnings = append(summary.Warnings, routeWarnings...)
	var mu sync.Mutex

	parser := export.NewParser(f)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for {
		rec, err := parser.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Structural failure of the source itself aborts the run.
			return nil, err
		}
		if ctx.Err() != nil {
			break
		}

		if !output.MatchesFilter(opts.ActivityFilter, rec.Sport) {
			mu.Lock()
			summary.FilteredOut++
			mu.Unlock()
			continue
		}

		g.Go(func() error {
			doc, cls, path, matched, err := convertOne(rec, registry, tolerance, writer)
			if err != nil {
				return fmt.Errorf("workout %s: %w", rec.ID.String()[:8], err)
			}

			mu.Lock()
			if matched {
				summary.MatchedWithRoute++
			} else {
				summary.MatchedWithoutRoute++
			}
			summary.TimeAnomalies += doc.TimeAnomalies
			summary.Written++
			mu.Unlock()

			logf("converted %s (%s, hr=%v) -> %s", cls.FileName, rec.Sport, doc.HasHeartRate, path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := parser.Stats()
	summary.Found = stats.Found
	summary.Supported = stats.Supported
	summary.Excluded = stats.Excluded
	summary.Malformed = stats.Malformed
	summary.Warnings = append(summary.Warnings, parser.Warnings()...)

	if err := ctx.Err(); err != nil {
		return summary, err
	}
	return summary, nil
}

// convertOne runs one workout through resolve, synthesize, build, and write.
// Synthesis and document assembly are sequential within the one goroutine, so
// trackpoint order can never be disturbed by the pool.
func convertOne(rec *models.WorkoutRecord, registry *routes.Registry, tolerance time.Duration, writer *output.Writer) (*tcx.Document, output.Classification, string, bool, error) {
	route := registry.Claim(rec.StartTime, tolerance)
	points := tcx.Synthesize(route, rec.HeartRate)
	doc := tcx.Build(rec, points)
	cls := output.Classify(doc)

	path, err := writer.Write(doc)
	if err != nil {
		return nil, cls, "", false, err
	}
	return doc, cls, path, route != nil, nil
}
