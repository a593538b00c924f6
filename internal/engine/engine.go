// =============================================================================
// Batch Coordinate Converter - Batch Transform Engine
// =============================================================================
//
// This module contains the core conversion logic. It drives a batch of
// point rows through a generic two-system coordinate transform while
// producing a WGS 84 normalized position for every row.
//
// PIPELINE (per row):
//   1. Decode the grid reference, when the source is the Irish grid sentinel
//   2. Transform (source -> destination) to obtain the result pair
//   3. Derive the normalized lat/lon (reusing source or result when one
//      side already is WGS 84, otherwise a third transform call)
//   4. Encode the result as a grid reference, when the destination is the
//      Irish grid sentinel
//
// Any failure in a row is caught, logged with the row index and recorded
// in the batch report; the row keeps whatever fields were populated before
// the failure and processing continues with the next row.
//
// CONCURRENCY:
//   Rows are independent of one another, so the engine can shard them
//   across workers. Each worker builds its own transform pairs, results
//   land by index, and the empty-row limit is computed once in scan order
//   before fan-out, so output order always matches input order.
//
// =============================================================================

package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/dancasey-ie/batch-coordinate-converter/internal/gridref"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/refsys"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/types"
)

// HaltAtFirstEmptyRow preserves the historical sentinel-terminated batch
// scan: processing stops at the first empty row and later rows are not
// visited even if populated. Flip to false to skip gaps instead.
const HaltAtFirstEmptyRow = true

// Pair transforms single points for one fixed (source, destination) code
// pair. Implementations must be safe to use from the worker that created
// them; they are never shared across workers.
type Pair interface {
	Trans(x, y float64) (float64, float64, error)
	Close()
}

// Factory builds a fresh Pair per code pair. A pair is never reused for
// different codes; a new source/destination selection gets a new pair.
type Factory interface {
	NewPair(srcCode, dstCode string) (Pair, error)
}

// Options configures an Engine.
type Options struct {
	// MaxConcurrency is the number of row workers. Values below 2 give a
	// pure synchronous single pass.
	MaxConcurrency int

	// Logger receives per-row failure diagnostics. Defaults to
	// slog.Default.
	Logger *slog.Logger
}

// Engine converts batches of point rows between reference systems. It
// holds no state between batches.
type Engine struct {
	factory Factory
	opts    Options
}

// New creates an Engine using the given transform factory.
func New(factory Factory, opts Options) *Engine {
	if opts.MaxConcurrency < 1 {
		opts.MaxConcurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Engine{factory: factory, opts: opts}
}

// RowError records a row-scoped conversion failure.
type RowError struct {
	Index int
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Report summarises one Convert call, so callers can tell "all succeeded"
// from "N of M failed" without inspecting rows for missing fields.
type Report struct {
	// Processed is the number of rows converted successfully.
	Processed int

	// Failed is the number of rows that recorded an error.
	Failed int

	// Skipped is true when either system was absent and the batch was
	// returned unchanged.
	Skipped bool

	// Errors holds the row-scoped failures, ordered by row index.
	Errors []RowError
}

// AllOK reports whether every visited row converted.
func (r Report) AllOK() bool {
	return !r.Skipped && r.Failed == 0
}

// Convert populates the result value and normalized position of every
// non-empty row, in place. Rows are visited in order up to the first
// empty row. When either system is absent the batch is returned unchanged
// with Report.Skipped set; that is "nothing to do", not an error. The
// returned error is batch-scoped and only reports transform pairs that
// could not be built.
func (e *Engine) Convert(batch *types.Batch, src, dst refsys.System) (Report, error) {
	if src.IsZero() || dst.IsZero() {
		return Report{Skipped: true}, nil
	}

	limit := len(batch.Rows)
	if HaltAtFirstEmptyRow {
		limit = batch.Limit()
	}

	workers := e.opts.MaxConcurrency
	if workers > limit {
		workers = limit
	}
	if workers <= 1 {
		report := Report{}
		err := e.convertRange(batch, src, dst, 0, limit, &report)
		return report, err
	}

	// Shard contiguous row ranges across workers, one result per worker.
	type shardResult struct {
		report Report
		err    error
	}
	var wg sync.WaitGroup
	results := make(chan shardResult, workers)
	per := (limit + workers - 1) / workers

	for start := 0; start < limit; start += per {
		end := start + per
		if end > limit {
			end = limit
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			var res shardResult
			res.err = e.convertRange(batch, src, dst, start, end, &res.report)
			results <- res
		}(start, end)
	}
	wg.Wait()
	close(results)

	var report Report
	var errs []error
	for res := range results {
		report.Processed += res.report.Processed
		report.Failed += res.report.Failed
		report.Errors = append(report.Errors, res.report.Errors...)
		if res.err != nil {
			errs = append(errs, res.err)
		}
	}
	sort.Slice(report.Errors, func(i, j int) bool {
		return report.Errors[i].Index < report.Errors[j].Index
	})
	return report, errors.Join(errs...)
}

// convertRange converts rows [start, end) with transform pairs owned by
// the calling goroutine.
func (e *Engine) convertRange(batch *types.Batch, src, dst refsys.System, start, end int, report *Report) error {
	if start >= end {
		return nil
	}

	conv, err := e.factory.NewPair(src.Code(), dst.Code())
	if err != nil {
		return fmt.Errorf("build %s -> %s transform: %w", src.Code(), dst.Code(), err)
	}
	defer conv.Close()

	// The normalization pair is only needed when neither side already is
	// WGS 84; otherwise the normalized position reuses an existing pair
	// of values and no extra transform call occurs.
	var norm Pair
	if !src.IsWGS84() && !dst.IsWGS84() {
		norm, err = e.factory.NewPair(src.Code(), refsys.WGS84Code)
		if err != nil {
			return fmt.Errorf("build %s -> %s transform: %w", src.Code(), refsys.WGS84Code, err)
		}
		defer norm.Close()
	}

	for i := start; i < end; i++ {
		row := &batch.Rows[i]
		if row.Empty() {
			continue
		}
		if err := convertRow(row, src, dst, conv, norm); err != nil {
			e.opts.Logger.Warn("row conversion failed",
				slog.Int("row", i),
				slog.String("id", row.ID),
				slog.Any("error", err))
			report.Failed++
			report.Errors = append(report.Errors, RowError{Index: i, Err: err})
			continue
		}
		report.Processed++
	}
	return nil
}

// convertRow runs the per-row pipeline, populating fields in order so a
// failing step leaves the earlier ones in place.
func convertRow(row *types.Row, src, dst refsys.System, conv, norm Pair) error {
	var x, y float64
	switch p := row.Source.(type) {
	case types.GridRef:
		var err error
		x, y, err = gridref.Decode(p.Ref)
		if err != nil {
			return err
		}
	case types.Coords:
		x, y = p.X, p.Y
	default:
		return fmt.Errorf("row has no source value")
	}

	xRes, yRes, err := conv.Trans(x, y)
	if err != nil {
		return fmt.Errorf("transform: %w", err)
	}
	row.Result = types.Coords{X: xRes, Y: yRes}

	switch {
	case src.IsWGS84():
		// The source already is lat/lon; reuse it bit-for-bit.
		row.Position = &types.GeoPoint{Lat: x, Lon: y}
	case dst.IsWGS84():
		row.Position = &types.GeoPoint{Lat: xRes, Lon: yRes}
	default:
		lat, lon, err := norm.Trans(x, y)
		if err != nil {
			return fmt.Errorf("normalize: %w", err)
		}
		row.Position = &types.GeoPoint{Lat: lat, Lon: lon}
	}

	if dst.IsIrishGrid() {
		ref, err := gridref.Encode(xRes, yRes)
		// The out-of-range value is displayable; keep it on the row
		// and still record the error.
		row.Result = types.GridRef{Ref: ref}
		if err != nil {
			return err
		}
	}
	return nil
}
