// =============================================================================
// Batch Coordinate Converter - Reference System Descriptor
// =============================================================================
//
// This package identifies coordinate reference systems the way the
// converter's surfaces name them: a human-readable label followed by a
// machine code, e.g. "WGS 84 - epsg:4326". The machine code is the
// substring from the "epsg:" marker onward.
//
// One label is special: the Irish grid reference sentinel. It carries no
// "epsg:" marker because its rows hold alphanumeric grid references, not
// numeric coordinates. Grid references are resolved through the gridref
// codec; only the decoded easting/northing ever reaches the transform
// library, under the sentinel's backing code epsg:29903.
//
// =============================================================================

package refsys

import (
	"fmt"
	"strings"
)

// IrishGridLabel is the sentinel system label. It is a fixed, distinct
// string that never contains "epsg:".
const IrishGridLabel = "Irish National Grid Ref. (with letter)"

// irishGridCode backs the sentinel for transform legs: TM75 / Irish Grid.
const irishGridCode = "epsg:29903"

// WGS84Code is the geographic lat/lon system used for normalized
// positions.
const WGS84Code = "epsg:4326"

// codeMarker introduces the machine code inside a display label.
const codeMarker = "epsg:"

// System identifies a coordinate reference system. The zero System means
// "no system selected"; conversion against it is a no-op.
type System struct {
	label string
}

// Parse builds a System from a display label. An empty label yields the
// zero System. A non-sentinel label must contain an "epsg:" code.
func Parse(label string) (System, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return System{}, nil
	}
	if label != IrishGridLabel && !strings.Contains(label, codeMarker) {
		return System{}, fmt.Errorf("no %q code in system label %q", codeMarker, label)
	}
	return System{label: label}, nil
}

// IsZero reports whether no system is selected.
func (s System) IsZero() bool {
	return s.label == ""
}

// IsIrishGrid reports whether this is the grid reference sentinel.
func (s System) IsIrishGrid() bool {
	return s.label == IrishGridLabel
}

// IsWGS84 reports whether the system is geographic WGS 84.
func (s System) IsWGS84() bool {
	return s.Code() == WGS84Code
}

// Code returns the machine code for the transform library: the substring
// from the "epsg:" marker onward, or the backing code for the sentinel.
func (s System) Code() string {
	if s.IsIrishGrid() {
		return irishGridCode
	}
	i := strings.Index(s.label, codeMarker)
	if i < 0 {
		return ""
	}
	return s.label[i:]
}

// Label returns the display label.
func (s System) Label() string {
	return s.label
}

func (s System) String() string {
	return s.label
}
