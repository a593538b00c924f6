// =============================================================================
// Batch Coordinate Converter - Batch Writers
// =============================================================================
//
// This module writes a converted batch back out. Two document shapes are
// supported:
//   - CSV: the destination schema's columns plus the normalized lat/lon,
//     one line per row up to the batch's sentinel limit
//   - GeoJSON: a FeatureCollection of the normalized positions, carrying
//     the marker data (index, id, source and result values, Google Maps
//     link) as feature properties
//
// Rows that failed conversion keep blank result cells in the CSV and are
// omitted from the GeoJSON entirely, since they carry no valid normalized
// position.
//
// =============================================================================

package batchio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/dancasey-ie/batch-coordinate-converter/internal/refsys"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/types"
)

// WriteCSV writes the batch as CSV: the destination schema's field ids as
// header, then one record per row up to the first empty row.
func WriteCSV(w io.Writer, batch *types.Batch, dst refsys.System) error {
	cols := refsys.OutputColumns(dst)
	header := make([]string, 0, len(cols)+2)
	for _, col := range cols {
		header = append(header, col.FieldID)
	}
	header = append(header, "lat", "lon")

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	limit := batch.Limit()
	for i := 0; i < limit; i++ {
		row := batch.Rows[i]
		record := make([]string, 0, len(header))
		if dst.IsIrishGrid() {
			record = append(record, gridRefCell(row.Result), row.ID)
		} else {
			x, y := coordCells(row.Result)
			record = append(record, x, y, row.ID)
		}
		if row.Position != nil {
			record = append(record, formatFloat(row.Position.Lat), formatFloat(row.Position.Lon))
		} else {
			record = append(record, "", "")
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// gridRefCell renders a result payload for a grid reference column.
// Payloads of the wrong shape (a row that failed before the encode step)
// render blank.
func gridRefCell(p types.Payload) string {
	if ref, ok := p.(types.GridRef); ok {
		return ref.Ref
	}
	return ""
}

// coordCells renders a result payload for numeric columns.
func coordCells(p types.Payload) (string, string) {
	if c, ok := p.(types.Coords); ok {
		return formatFloat(c.X), formatFloat(c.Y)
	}
	return "", ""
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
