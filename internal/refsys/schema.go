package refsys

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dancasey-ie/batch-coordinate-converter/internal/types"
)

// ValueKind is the kind of value a schema column holds.
type ValueKind string

const (
	KindText    ValueKind = "text"
	KindNumeric ValueKind = "numeric"
)

// Column describes one field of the active row schema. The data-entry and
// data-display surfaces expose exactly these fields, in order.
type Column struct {
	FieldID     string
	DisplayName string
	Kind        ValueKind
}

// InputColumns returns the fields an input row carries for the selected
// source system. There are exactly two field sets: grid reference text
// for the Irish grid sentinel, a numeric pair for everything else. The
// selection is pure and memory-less.
func InputColumns(s System) []Column {
	if s.IsIrishGrid() {
		return []Column{
			{FieldID: "grid_ref", DisplayName: "Grid Ref", Kind: KindText},
			{FieldID: "id", DisplayName: "ID", Kind: KindText},
		}
	}
	return []Column{
		{FieldID: "x_src", DisplayName: "Lat / Northing", Kind: KindNumeric},
		{FieldID: "y_src", DisplayName: "Lon / Easting", Kind: KindNumeric},
		{FieldID: "id", DisplayName: "ID", Kind: KindText},
	}
}

// BuildRow assembles an input row from one tabular record, mapped
// positionally onto the given input columns. A record whose cells are all
// blank yields the empty row sentinel. Missing trailing cells are treated
// as blank.
func BuildRow(cols []Column, record []string) (types.Row, error) {
	cell := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	blank := true
	for i := range cols {
		if cell(i) != "" {
			blank = false
			break
		}
	}
	if blank {
		return types.Row{}, nil
	}

	var row types.Row
	if cols[0].FieldID == "grid_ref" {
		if ref := cell(0); ref != "" {
			row.Source = types.GridRef{Ref: ref}
		}
		row.ID = cell(1)
		return row, nil
	}

	xCell, yCell := cell(0), cell(1)
	row.ID = cell(2)
	switch {
	case xCell == "" && yCell == "":
		// id-only row; the engine reports it as missing a source value.
	case xCell == "" || yCell == "":
		return types.Row{}, fmt.Errorf("incomplete coordinate pair (%q, %q)", xCell, yCell)
	default:
		x, err := strconv.ParseFloat(xCell, 64)
		if err != nil {
			return types.Row{}, fmt.Errorf("parse %s: %w", cols[0].FieldID, err)
		}
		y, err := strconv.ParseFloat(yCell, 64)
		if err != nil {
			return types.Row{}, fmt.Errorf("parse %s: %w", cols[1].FieldID, err)
		}
		row.Source = types.Coords{X: x, Y: y}
	}
	return row, nil
}

// OutputColumns is InputColumns for the destination side of a row.
func OutputColumns(s System) []Column {
	if s.IsIrishGrid() {
		return []Column{
			{FieldID: "grid_ref", DisplayName: "Grid Ref", Kind: KindText},
			{FieldID: "id", DisplayName: "ID", Kind: KindText},
		}
	}
	return []Column{
		{FieldID: "x_res", DisplayName: "Lat / Northing", Kind: KindNumeric},
		{FieldID: "y_res", DisplayName: "Lon / Easting", Kind: KindNumeric},
		{FieldID: "id", DisplayName: "ID", Kind: KindText},
	}
}
