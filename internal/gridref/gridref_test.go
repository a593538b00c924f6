package gridref

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		ref      string
		easting  float64
		northing float64
	}{
		{
			name:     "space delimited",
			ref:      "O 12345 23456",
			easting:  312345,
			northing: 223456,
		},
		{
			name:     "origin square",
			ref:      "V 80367 84425",
			easting:  80367,
			northing: 84425,
		},
		{
			name:     "lowercase and padding whitespace",
			ref:      "  n 15904 34671 ",
			easting:  215904,
			northing: 234671,
		},
		{
			name:     "concatenated full precision",
			ref:      "N1590434671",
			easting:  215904,
			northing: 234671,
		},
		{
			name:     "concatenated short form right-pads each half",
			ref:      "X12",
			easting:  210000,
			northing: 20000,
		},
		{
			name:     "top right square",
			ref:      "E 99999 99999",
			easting:  499999,
			northing: 499999,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			easting, northing, err := Decode(tt.ref)
			require.NoError(t, err)
			assert.Equal(t, tt.easting, easting)
			assert.Equal(t, tt.northing, northing)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{name: "letter I is not in the grid", ref: "I 12345 23456"},
		{name: "unknown letter", ref: "Ñ 12345 23456"},
		{name: "empty", ref: ""},
		{name: "letter only", ref: "N"},
		{name: "too few groups", ref: "N 12345"},
		{name: "too many groups", ref: "N 12345 23456 34567"},
		{name: "group not five digits", ref: "Y 12345 400"},
		{name: "group too long", ref: "N 123456 234567"},
		{name: "non-digit group", ref: "N 12a45 23456"},
		{name: "odd concatenated split", ref: "B123"},
		{name: "concatenated run too long", ref: "B123456789012345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.ref)
			assert.ErrorIs(t, err, ErrMalformedRef)
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		y    float64
		want string
	}{
		{name: "six digit values split a band", x: 312345, y: 223456, want: "O 12345 23456"},
		{name: "five digit values sit in band zero", x: 80367, y: 84425, want: "V 80367 84425"},
		{name: "short local values are not re-padded", x: 312345, y: 400, want: "Y 12345 400"},
		{name: "rounded to whole metres", x: 312345.4, y: 223455.6, want: "O 12345 23456"},
		{name: "zero", x: 0, y: 0, want: "V 0 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Encode(tt.x, tt.y)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref)
		})
	}
}

func TestEncodeOutOfRange(t *testing.T) {
	tests := []struct {
		name string
		x    float64
		y    float64
	}{
		{name: "easting band above 4", x: 612345, y: 223456},
		{name: "northing band above 4", x: 312345, y: 523456},
		{name: "negative easting", x: -100, y: 223456},
		{name: "far outside the grid", x: 1234567890, y: 1234567890},
		{name: "beyond integer metres", x: 9.3e18, y: 100},
		{name: "largest float", x: 100, y: math.MaxFloat64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := Encode(tt.x, tt.y)
			assert.ErrorIs(t, err, ErrRangeExceeded)
			assert.Equal(t, OutOfRange, ref)
		})
	}
}

// Encode emits short local values without padding, and Decode only pads
// the concatenated form. A reference produced from sub-square values is
// therefore not decodable even though it displays fine. The asymmetry is
// long-standing observable behavior and is kept as-is.
func TestEncodePadAsymmetry(t *testing.T) {
	ref, err := Encode(312345, 400)
	require.NoError(t, err)
	require.Equal(t, "Y 12345 400", ref)

	_, _, err = Decode(ref)
	assert.ErrorIs(t, err, ErrMalformedRef)
}

func TestRoundTrip(t *testing.T) {
	// Locals with leading zeros do not round trip as strings: Encode
	// emits them unpadded (see TestEncodePadAsymmetry).
	refs := []string{
		"V 80367 84425",
		"N 15904 34671",
		"O 12345 23456",
		"S 23644 98765",
		"E 99999 99999",
	}

	for _, ref := range refs {
		easting, northing, err := Decode(ref)
		require.NoError(t, err, ref)

		got, err := Encode(easting, northing)
		require.NoError(t, err, ref)
		assert.Equal(t, ref, got)
	}
}
