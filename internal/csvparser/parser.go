// =============================================================================
// Batch Coordinate Converter - CSV Batch Parser
// =============================================================================
//
// This module reads a point batch from a CSV file. Columns are mapped
// positionally onto the active source schema: either (grid_ref, id) for
// the Irish grid sentinel or (x_src, y_src, id) for numeric systems.
//
// The input is scanned line by line rather than handed to a csv reader
// wholesale: a bare blank line must become an empty row, preserving the
// batch's positional sentinel semantics, and csv readers silently drop
// blank lines. One consequence: quoted fields must not span lines.
//
// =============================================================================

package csvparser

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dancasey-ie/batch-coordinate-converter/internal/refsys"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/types"
)

// Options configures CSV parsing.
type Options struct {
	// Delimiter is the field separator. Zero means comma.
	Delimiter rune

	// HasHeader skips the first record.
	HasHeader bool
}

// Parse reads the batch file at path using the active source schema.
func Parse(path string, cols []refsys.Column, opts Options) (*types.Batch, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	batch, err := ParseReader(file, cols, opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return batch, nil
}

// ParseReader reads a batch from r. Records may be shorter than the
// schema; missing trailing cells are blank. A blank line yields an empty
// row at its position.
func ParseReader(r io.Reader, cols []refsys.Column, opts Options) (*types.Batch, error) {
	scanner := bufio.NewScanner(r)
	batch := &types.Batch{}
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if opts.HasHeader && line == 1 {
			continue
		}
		if strings.TrimSpace(text) == "" {
			batch.Rows = append(batch.Rows, types.Row{})
			continue
		}

		record, err := parseRecord(text, opts)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		row, err := refsys.BuildRow(cols, record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		batch.Rows = append(batch.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return batch, nil
}

// parseRecord splits one non-blank line into its fields.
func parseRecord(text string, opts Options) ([]string, error) {
	reader := csv.NewReader(strings.NewReader(text))
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader.Read()
}
