// =============================================================================
// Batch Coordinate Converter - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command
// is the base that all other commands ('convert', 'version') are attached
// to. It owns the global flags and the logger setup.
//
// COBRA CLI STRUCTURE:
//   rootCmd (coordconv)
//   ├── convertCmd (coordconv convert)
//   └── versionCmd (coordconv version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the path to the configuration file. Empty means built-in
// defaults.
var cfgFile string

// verbose forces debug logging regardless of the configured level.
var verbose bool

// rootCmd represents the base command when called without any
// subcommands.
var rootCmd = &cobra.Command{
	Use:   "coordconv",
	Short: "Batch Coordinate Converter - convert point batches between reference systems",
	Long: `Batch Coordinate Converter transforms tabular batches of point
coordinates between geodetic and projected reference systems, producing a
WGS 84 latitude/longitude pair for every point regardless of the systems
chosen.

Key features:
  - Convert between any EPSG coordinate systems
  - Irish National Grid references (with letter) as input or output
  - CSV and XLSX batch input, CSV and GeoJSON output
  - Per-row error isolation: one bad point never aborts the batch

Example usage:
  coordconv convert -i points.csv
  coordconv convert -i peaks.xlsx --from "Irish National Grid Ref. (with letter)" --to "WGS 84 - epsg:4326"
  coordconv convert -i points.csv --geojson markers.geojson`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and runs it. Called
// once from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"",
		"Path to the configuration file (built-in defaults when omitted)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// setupLogging installs the process logger at the given level. --verbose
// wins over the configured level.
func setupLogging(level slog.Level) {
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
