// =============================================================================
// Batch Coordinate Converter - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - engine
//   - csvparser / xlsxparser
//   - batchio
//   - validation
//
// =============================================================================

package types

// GeoPoint is a WGS 84 latitude/longitude pair. It is derived for every
// successfully converted row regardless of the selected systems and is
// used only for map display (markers, GeoJSON), never as a result value.
type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Payload is the value carried on one side of a row. Which variant a side
// holds is decided by the active row schema for that side's reference
// system: GridRef for the Irish grid sentinel, Coords for everything else.
type Payload interface {
	isPayload()
}

// GridRef carries an Irish National Grid alphanumeric reference,
// e.g. "N 15904 34671".
type GridRef struct {
	Ref string
}

// Coords carries a numeric coordinate pair. For geographic systems X is
// latitude and Y is longitude; for projected systems X is easting and Y
// is northing.
type Coords struct {
	X float64
	Y float64
}

func (GridRef) isPayload() {}
func (Coords) isPayload()  {}

// Row is one record of a batch.
type Row struct {
	// ID is an optional free-text label. It identifies the point in
	// outputs and markers and takes no part in any computation.
	ID string

	// Source is the input-side value, shaped by the source schema.
	Source Payload

	// Result is the output-side value, shaped by the destination schema.
	// Nil until the row has been converted.
	Result Payload

	// Position is the WGS 84 normalized position. Nil until the row has
	// been converted, and left nil when conversion of the row failed.
	Position *GeoPoint
}

// Empty reports whether the row carries no input at all. An empty row is
// the historical "no more data" sentinel in a fixed-capacity batch, not a
// semantic record.
func (r Row) Empty() bool {
	return r.ID == "" && r.Source == nil
}

// Batch is an ordered sequence of rows with a caller-enforced capacity
// bound. Order is significant and preserved end to end.
type Batch struct {
	Rows []Row
}

// Limit returns the number of leading rows before the first empty row.
// Historical batches are sentinel-terminated: once an empty row appears
// in scan order, everything after it is considered absent.
func (b *Batch) Limit() int {
	for i, r := range b.Rows {
		if r.Empty() {
			return i
		}
	}
	return len(b.Rows)
}
