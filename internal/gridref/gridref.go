// =============================================================================
// Batch Coordinate Converter - Irish Grid Reference Codec
// =============================================================================
//
// This package encodes and decodes Irish National Grid alphanumeric
// references to and from absolute easting/northing pairs. The grid divides
// Ireland into a 5x5 matrix of 100 km squares, each named by a letter (the
// letter "I" is not used). The origin is the bottom left of square "V".
//
// A reference is a letter plus two digit groups, either space delimited
// ("N 15904 34671") or concatenated ("N1590434671"). The digit groups are
// the local easting and northing inside the letter's square; the absolute
// value is the square's band digit prefixed to the 5-digit local value.
//
// =============================================================================

package gridref

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Error kinds. Both are row-scoped when surfaced by the batch engine:
// neither ever aborts a batch.
var (
	// ErrMalformedRef reports a reference whose letter is not in the grid
	// matrix or whose digit groups do not form two 5-digit halves.
	ErrMalformedRef = errors.New("malformed grid reference")

	// ErrRangeExceeded reports coordinates whose band digits fall outside
	// the 5x5 letter matrix.
	ErrRangeExceeded = errors.New("coordinates outside the Irish grid")
)

// OutOfRange is the distinguished value Encode returns alongside
// ErrRangeExceeded. It is safe to display in a result column.
const OutOfRange = "OUT OF RANGE"

// grid is the 5x5 letter matrix, missing I. The row index is the northing
// band and the column index is the easting band, counted from the origin.
var grid = [5][5]byte{
	{'V', 'W', 'X', 'Y', 'Z'},
	{'Q', 'R', 'S', 'T', 'U'},
	{'L', 'M', 'N', 'O', 'P'},
	{'F', 'G', 'H', 'J', 'K'},
	{'A', 'B', 'C', 'D', 'E'},
}

// bands returns the northing and easting band of a grid letter.
func bands(letter byte) (northing, easting int, ok bool) {
	for n := range grid {
		for e := range grid[n] {
			if grid[n][e] == letter {
				return n, e, true
			}
		}
	}
	return 0, 0, false
}

// Decode converts a grid reference to an absolute (easting, northing)
// pair in metres. Input is trimmed and case-normalized. The concatenated
// form splits its digit run evenly in half, right-padding each half with
// zeros to five digits; the space-delimited form takes its digit groups
// as written. Either way each half must be exactly five digits.
func Decode(ref string) (easting, northing float64, err error) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	if len(ref) < 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}

	var letter byte
	var eastPart, northPart string
	if strings.ContainsRune(ref, ' ') {
		parts := strings.Fields(ref)
		if len(parts) != 3 || len(parts[0]) != 1 {
			return 0, 0, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
		}
		letter = parts[0][0]
		eastPart = parts[1]
		northPart = parts[2]
	} else {
		half := (len(ref) - 1) / 2
		if half > 5 {
			return 0, 0, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
		}
		pad := strings.Repeat("0", 5-half)
		letter = ref[0]
		eastPart = ref[1:1+half] + pad
		northPart = ref[1+half:] + pad
	}

	eastLocal, err1 := strconv.Atoi(eastPart)
	northLocal, err2 := strconv.Atoi(northPart)
	if len(eastPart) != 5 || len(northPart) != 5 || err1 != nil || err2 != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedRef, ref)
	}

	northBand, eastBand, ok := bands(letter)
	if !ok {
		return 0, 0, fmt.Errorf("%w: letter %q not in grid", ErrMalformedRef, string(letter))
	}

	easting = float64(eastBand)*100000 + float64(eastLocal)
	northing = float64(northBand)*100000 + float64(northLocal)
	return easting, northing, nil
}

// Encode converts an absolute (easting, northing) pair in metres to a
// grid reference. Values are rounded to whole metres. A six-digit value
// contributes its leading digit as the band; shorter values sit in band 0
// and are emitted as-is, without the zero padding Decode applies. When
// either band falls outside the matrix, including values too long for a
// one-digit band, the OutOfRange value is returned together with
// ErrRangeExceeded.
func Encode(x, y float64) (string, error) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) || x < 0 || y < 0 {
		return OutOfRange, fmt.Errorf("%w: (%v, %v)", ErrRangeExceeded, x, y)
	}
	// Values at or beyond 2^63 metres do not survive the int64 rounding
	// step below; they are out of range long before the band check.
	if x >= 1<<63 || y >= 1<<63 {
		return OutOfRange, fmt.Errorf("%w: (%v, %v)", ErrRangeExceeded, x, y)
	}

	eastBand, eastLocal := splitBand(strconv.FormatInt(int64(math.Round(x)), 10))
	northBand, northLocal := splitBand(strconv.FormatInt(int64(math.Round(y)), 10))
	if eastBand < 0 || eastBand > 4 || northBand < 0 || northBand > 4 {
		return OutOfRange, fmt.Errorf("%w: (%v, %v)", ErrRangeExceeded, x, y)
	}

	return fmt.Sprintf("%c %s %s", grid[northBand][eastBand], eastLocal, northLocal), nil
}

// splitBand separates the band digit from the local digits of one axis.
// Values of seven or more digits have a band wider than one digit, which
// cannot index the letter matrix; they report band -1.
func splitBand(s string) (band int, local string) {
	switch {
	case len(s) < 6:
		return 0, s
	case len(s) == 6:
		return int(s[0] - '0'), s[1:]
	default:
		return -1, s
	}
}
