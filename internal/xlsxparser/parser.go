// =============================================================================
// Batch Coordinate Converter - XLSX Batch Parser
// =============================================================================
//
// This module reads a point batch from the first sheet of an XLSX
// workbook, for users who keep their coordinate batches in spreadsheets
// rather than CSV exports. Cell-to-field mapping is positional on the
// active source schema, the same contract as the CSV parser.
//
// =============================================================================

package xlsxparser

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dancasey-ie/batch-coordinate-converter/internal/refsys"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/types"
)

// Options configures XLSX parsing.
type Options struct {
	// Sheet is the worksheet name. Empty means the first sheet.
	Sheet string

	// HasHeader skips the first row.
	HasHeader bool
}

// Parse reads the batch workbook at path using the active source schema.
func Parse(path string, cols []refsys.Column, opts Options) (*types.Batch, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()

	sheet := opts.Sheet
	if sheet == "" {
		sheet = file.GetSheetName(0)
		if sheet == "" {
			return nil, fmt.Errorf("workbook %s has no sheets", path)
		}
	}

	rows, err := file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	if opts.HasHeader && len(rows) > 0 {
		rows = rows[1:]
	}

	batch := &types.Batch{Rows: make([]types.Row, 0, len(rows))}
	for i, record := range rows {
		row, err := refsys.BuildRow(cols, record)
		if err != nil {
			line := i + 1
			if opts.HasHeader {
				line++
			}
			return nil, fmt.Errorf("parse %s row %d: %w", path, line, err)
		}
		batch.Rows = append(batch.Rows, row)
	}
	return batch, nil
}
