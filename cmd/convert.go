// =============================================================================
// Batch Coordinate Converter - Convert Command
// =============================================================================
//
// This file defines the 'convert' command, which runs the batch
// conversion pipeline end to end:
//
//   1. Load configuration
//   2. Resolve the source and destination reference systems
//   3. Parse the input batch (CSV or XLSX, schema per source system)
//   4. Validate the batch (capacity, schema shape)
//   5. Convert every row (PROJ transforms + grid reference codec)
//   6. Write the output batch as CSV, optionally also as GeoJSON
//   7. Archive the input file on full success
//
// Row failures are reported and logged with their index; they never abort
// the batch.
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dancasey-ie/batch-coordinate-converter/internal/batchio"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/config"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/csvparser"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/engine"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/refsys"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/transform"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/types"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/validation"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/xlsxparser"
	"github.com/dancasey-ie/batch-coordinate-converter/pkg/utils"
)

var (
	// inputPath is the batch file to convert (.csv or .xlsx).
	inputPath string

	// outputPath is the CSV output file. Empty derives a name from the
	// configured format inside the output directory.
	outputPath string

	// fromLabel and toLabel override the configured default systems.
	fromLabel string
	toLabel   string

	// geojsonPath, when set, additionally writes the normalized
	// positions as a GeoJSON feature collection.
	geojsonPath string

	// noHeader marks inputs whose first record is data, not a header.
	noHeader bool

	// dryRun converts and reports without writing or archiving anything.
	dryRun bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a batch of point coordinates between reference systems",
	Long: `The convert command reads a batch of points from a CSV or XLSX file,
transforms every row from the source system to the destination system and
derives a WGS 84 position for each point.

The input columns follow the source system: a single grid reference column
for "` + refsys.IrishGridLabel + `", otherwise a numeric coordinate pair.
An optional trailing ID column labels points in the output and on the map.

Rows that fail (malformed grid reference, point outside the transform's
domain) are reported with their row index and left blank in the output;
the rest of the batch is unaffected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert()
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input batch file (.csv or .xlsx); omit to convert every batch file in the configured input directory")
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output CSV file (derived from the configured format when omitted)")
	convertCmd.Flags().StringVar(&fromLabel, "from", "", "Source system label, e.g. \"TM75 / Irish Grid - epsg:29903\"")
	convertCmd.Flags().StringVar(&toLabel, "to", "", "Destination system label, e.g. \"WGS 84 - epsg:4326\"")
	convertCmd.Flags().StringVar(&geojsonPath, "geojson", "", "Also write the normalized positions to this GeoJSON file")
	convertCmd.Flags().BoolVar(&noHeader, "no-header", false, "Treat the first input record as data, not a header")
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Convert and report without writing output files")
}

func runConvert() error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	setupLogging(cfg.SlogLevel())

	src, dst, err := resolveSystems(cfg)
	if err != nil {
		return err
	}

	inputs, err := collectInputs(cfg)
	if err != nil {
		return err
	}
	if len(inputs) > 1 && (outputPath != "" || geojsonPath != "") {
		return fmt.Errorf("--output and --geojson require a single --input file")
	}

	for _, path := range inputs {
		if err := convertFile(cfg, path, src, dst); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

// collectInputs resolves the batch files to convert: the --input flag
// when given, otherwise every batch file in the configured input
// directory.
func collectInputs(cfg config.Config) ([]string, error) {
	if inputPath != "" {
		return []string{inputPath}, nil
	}

	entries, err := os.ReadDir(cfg.InputDir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".csv", ".xlsx":
			inputs = append(inputs, filepath.Join(cfg.InputDir, entry.Name()))
		}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no batch files (.csv or .xlsx) in %s", cfg.InputDir)
	}
	return inputs, nil
}

func convertFile(cfg config.Config, path string, src, dst refsys.System) error {
	slog.Info("converting batch",
		slog.String("input", path),
		slog.String("from", src.Label()),
		slog.String("to", dst.Label()))

	batch, err := parseInput(path, src)
	if err != nil {
		return err
	}

	result := validation.Check(batch, src, cfg.BatchCapacity)
	for _, finding := range result.Findings {
		if finding.Severity == validation.SeverityError {
			slog.Error(finding.Message, slog.Int("row", finding.Row))
		} else {
			slog.Warn(finding.Message, slog.Int("row", finding.Row))
		}
	}
	if !result.IsValid() {
		return fmt.Errorf("batch failed validation with %d error(s)", result.ErrorCount)
	}

	eng := engine.New(transform.NewFactory(), engine.Options{
		MaxConcurrency: cfg.MaxConcurrency,
	})
	report, err := eng.Convert(batch, src, dst)
	if err != nil {
		return err
	}
	if report.Skipped {
		return fmt.Errorf("no systems selected, nothing to do")
	}
	slog.Info("conversion finished",
		slog.Int("processed", report.Processed),
		slog.Int("failed", report.Failed))

	if dryRun {
		fmt.Printf("Dry run: %d of %d row(s) converted, no files written\n",
			report.Processed, report.Processed+report.Failed)
		return nil
	}

	outPath, err := writeOutputs(cfg, batch, src, dst)
	if err != nil {
		return err
	}

	fm := utils.NewFileManager(cfg.OutputDir, cfg.InputArchiveDir)
	if cfg.ArchiveOnSuccess && report.AllOK() {
		if err := fm.EnsureDirs(); err != nil {
			return err
		}
		if err := fm.ArchiveInput(path); err != nil {
			slog.Warn("failed to archive input file", slog.Any("error", err))
		}
	}

	fmt.Printf("Converted %d of %d row(s): %s\n",
		report.Processed, report.Processed+report.Failed, outPath)
	if report.Failed > 0 {
		fmt.Printf("%d row(s) failed; see the log for row indices\n", report.Failed)
	}
	return nil
}

// resolveSystems picks the source and destination systems from flags,
// falling back to the configured defaults.
func resolveSystems(cfg config.Config) (src, dst refsys.System, err error) {
	srcLabel := fromLabel
	if srcLabel == "" {
		srcLabel = cfg.DefaultSourceSystem
	}
	dstLabel := toLabel
	if dstLabel == "" {
		dstLabel = cfg.DefaultDestinationSystem
	}

	src, err = refsys.Parse(srcLabel)
	if err != nil {
		return src, dst, fmt.Errorf("source system: %w", err)
	}
	dst, err = refsys.Parse(dstLabel)
	if err != nil {
		return src, dst, fmt.Errorf("destination system: %w", err)
	}
	return src, dst, nil
}

// parseInput reads the batch with the parser matching the file extension.
func parseInput(path string, src refsys.System) (*types.Batch, error) {
	cols := refsys.InputColumns(src)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return xlsxparser.Parse(path, cols, xlsxparser.Options{HasHeader: !noHeader})
	default:
		return csvparser.Parse(path, cols, csvparser.Options{HasHeader: !noHeader})
	}
}

// writeOutputs writes the converted batch as CSV and, when requested, as
// GeoJSON. It returns the CSV output path.
func writeOutputs(cfg config.Config, batch *types.Batch, src, dst refsys.System) (string, error) {
	fm := utils.NewFileManager(cfg.OutputDir, cfg.InputArchiveDir)

	outPath := outputPath
	if outPath == "" {
		if err := fm.EnsureDirs(); err != nil {
			return "", err
		}
		outPath = fm.OutputPath(cfg.OutputNameFormat)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("create output: %w", err)
	}
	defer out.Close()
	if err := batchio.WriteCSV(out, batch, dst); err != nil {
		return "", fmt.Errorf("write output: %w", err)
	}

	if geojsonPath != "" {
		gj, err := os.Create(geojsonPath)
		if err != nil {
			return "", fmt.Errorf("create geojson: %w", err)
		}
		defer gj.Close()
		if err := batchio.WriteGeoJSON(gj, batch, src.Label(), dst.Label()); err != nil {
			return "", fmt.Errorf("write geojson: %w", err)
		}
		slog.Info("wrote geojson markers", slog.String("path", geojsonPath))
	}
	return outPath, nil
}
