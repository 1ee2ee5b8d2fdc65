// ABOUTME: CLI command running the full export-to-TCX conversion.
// ABOUTME: Merges config file defaults with flags and prints the run summary.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/rsharman/hk2tcx/internal/config"
	"github.com/rsharman/hk2tcx/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	convertOutput       string
	convertActivity     string
	convertTolerance    int
	convertWorkers      int
	convertReport       string
	convertReportFormat string
	convertQuiet        bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <export-dir>",
	Short: "Convert workouts to TCX files",
	Long: `Convert every Apple Watch workout in the export to a TCX file.

Workouts from other sources (phone apps, third-party trackers) are excluded
and counted, never converted. A workout whose GPS route can't be matched is
still written, just without trackpoints.

EXAMPLES:

  hk2tcx convert ~/apple_health_export
  hk2tcx convert ~/apple_health_export -o ~/tcx -a cycling
  hk2tcx convert ~/apple_health_export --tolerance 10 --workers 8
  hk2tcx convert ~/apple_health_export --report run.yaml --report-format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		opts := pipeline.Options{
			ExportDir:      config.ExpandPath(args[0]),
			OutputDir:      cfg.GetOutputDir(),
			ActivityFilter: convertActivity,
			Tolerance:      cfg.GetTolerance(),
			Workers:        cfg.GetWorkers(),
		}
		if convertOutput != "" {
			opts.OutputDir = config.ExpandPath(convertOutput)
		}
		if convertTolerance > 0 {
			opts.Tolerance = time.Duration(convertTolerance) * time.Minute
		}
		if convertWorkers > 0 {
			opts.Workers = convertWorkers
		}
		if !convertQuiet {
			faint := color.New(color.Faint)
			opts.Log = func(format string, args ...any) {
				faint.Printf(format+"\n", args...)
			}
		}

		summary, err := pipeline.Run(context.Background(), opts)
		if err != nil {
			return err
		}

		printSummary(summary)

		if convertReport != "" {
			if err := summary.WriteReport(convertReport, convertReportFormat); err != nil {
				return err
			}
			color.Green("✓ Report written to %s", convertReport)
		}
		return nil
	},
}

func printSummary(s *pipeline.Summary) {
	fmt.Println()
	color.Green("✓ Converted %d workouts to %s", s.Written, s.OutputDir)
	fmt.Printf("  found %d, supported %d, excluded %d\n", s.Found, s.Supported, s.Excluded)
	fmt.Printf("  with route %d, without route %d (routes available: %d)\n",
		s.MatchedWithRoute, s.MatchedWithoutRoute, s.RoutesAvailable)
	if s.FilteredOut > 0 {
		fmt.Printf("  filtered out by activity type: %d\n", s.FilteredOut)
	}
	if s.Malformed > 0 {
		color.Yellow("⚠ Skipped %d malformed workout entries", s.Malformed)
	}
	if s.TimeAnomalies > 0 {
		color.Yellow("⚠ %d trackpoints fell outside their workout's time window", s.TimeAnomalies)
	}
	for _, w := range s.Warnings {
		color.Yellow("⚠ %s", w)
	}
}

func init() {
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "output directory (default: <export-dir>/tcx_files)")
	convertCmd.Flags().StringVarP(&convertActivity, "activity", "a", "", "only convert workouts matching this activity type")
	convertCmd.Flags().IntVar(&convertTolerance, "tolerance", 0, "route matching window in minutes (default 5)")
	convertCmd.Flags().IntVar(&convertWorkers, "workers", 0, "number of concurrent conversion workers (default 4)")
	convertCmd.Flags().StringVar(&convertReport, "report", "", "write a machine-readable run summary to this path")
	convertCmd.Flags().StringVar(&convertReportFormat, "report-format", "json", "report format: json or yaml")
	convertCmd.Flags().BoolVarP(&convertQuiet, "quiet", "q", false, "suppress per-workout progress lines")
	rootCmd.AddCommand(convertCmd)
}
