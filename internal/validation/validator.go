// =============================================================================
// Batch Coordinate Converter - Batch Validation
// =============================================================================
//
// This module checks a parsed batch before conversion. Validation is
// collect-not-throw: every finding is gathered with its row index and a
// severity, so the caller can print all problems at once instead of
// failing on the first.
//
// Severities:
//   "error"   - the batch should not be converted (capacity exceeded,
//               value shape contradicts the active schema)
//   "warning" - the row will fail or be skipped during conversion but
//               does not block the batch (syntactically bad grid ref,
//               id-only row)
//
// The capacity bound lives here, not in the engine: exceeding it is a
// caller-side concern and the CLI is the caller.
//
// =============================================================================

package validation

import (
	"fmt"
	"math"
	"strings"

	"github.com/dancasey-ie/batch-coordinate-converter/internal/gridref"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/refsys"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/types"
)

// Severity of a finding.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Finding is a single validation result.
type Finding struct {
	Severity string

	// Row is the zero-based row index, or -1 for batch-level findings.
	Row int

	Message string
}

// Error implements the error interface.
func (f *Finding) Error() string {
	if f.Row < 0 {
		return fmt.Sprintf("[%s] batch: %s", strings.ToUpper(f.Severity), f.Message)
	}
	return fmt.Sprintf("[%s] row %d: %s", strings.ToUpper(f.Severity), f.Row, f.Message)
}

// Result collects the findings for one batch.
type Result struct {
	Findings     []*Finding
	ErrorCount   int
	WarningCount int
}

// IsValid reports whether the batch can be converted.
func (r Result) IsValid() bool {
	return r.ErrorCount == 0
}

func (r *Result) add(severity string, row int, format string, args ...interface{}) {
	r.Findings = append(r.Findings, &Finding{Severity: severity, Row: row, Message: fmt.Sprintf(format, args...)})
	if severity == SeverityError {
		r.ErrorCount++
	} else {
		r.WarningCount++
	}
}

// Check validates the batch against the source system's schema and the
// configured capacity. Only rows before the sentinel limit are examined.
func Check(batch *types.Batch, src refsys.System, capacity int) Result {
	var result Result

	limit := batch.Limit()
	if limit > capacity {
		result.add(SeverityError, -1, "batch has %d rows, capacity is %d", limit, capacity)
	}

	wantGrid := src.IsIrishGrid()
	for i := 0; i < limit; i++ {
		row := batch.Rows[i]
		switch p := row.Source.(type) {
		case types.GridRef:
			if !wantGrid {
				result.add(SeverityError, i, "grid reference value for numeric system %s", src.Label())
				continue
			}
			if _, _, err := gridref.Decode(p.Ref); err != nil {
				result.add(SeverityWarning, i, "grid reference %q will not convert: %v", p.Ref, err)
			}
		case types.Coords:
			if wantGrid {
				result.add(SeverityError, i, "numeric value for grid reference input")
				continue
			}
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				result.add(SeverityError, i, "coordinate pair is not finite")
			}
		default:
			// Non-empty row without a source value (id only).
			result.add(SeverityWarning, i, "row %q has no source value", row.ID)
		}
	}
	return result
}
