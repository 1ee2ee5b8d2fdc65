// ABOUTME: Root Cobra command for the hk2tcx CLI.
// ABOUTME: Describes the export layout and the convert/inspect workflow.
package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "hk2tcx",
	Short: "Convert Apple Health workouts to TCX",
	Long: `hk2tcx converts Apple Watch workouts from an Apple Health export into
TCX files suitable for import into Garmin Connect and similar platforms.

INPUT LAYOUT:

  The export directory is what Health.app produces when you export your
  data: an export.xml listing every workout, and a workout-routes/ folder
  of per-workout GPX files.

  hk2tcx matches each workout to its GPS route by time proximity: a route
  whose first point lies within the tolerance window of the workout's start
  is claimed for that workout. Indoor workouts simply have no route.

OUTPUT LAYOUT:

  <output>/<year>/<month>/<timestamp>_<Sport>.tcx
  <output>/no_heart_rate/<year>/<month>/...    (workouts without HR data)

HEART RATE:

  The export carries only a per-workout average/min/max, not per-second
  samples. Each trackpoint gets the workout average; this is a documented
  limitation of the source format.

QUICK START:

  $ hk2tcx inspect ~/apple_health_export          # See what's in the export
  $ hk2tcx convert ~/apple_health_export          # Convert everything
  $ hk2tcx convert ~/apple_health_export -a run   # Only running workouts

CONFIGURATION:

  Defaults for output directory, tolerance, and worker count can be set in
  $XDG_CONFIG_HOME/hk2tcx/config.json. Command-line flags win over the file.`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
