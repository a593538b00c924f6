package refsys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		wantCode  string
		wantZero  bool
		wantIrish bool
		wantWGS84 bool
	}{
		{
			name:      "wgs84",
			label:     "WGS 84 - epsg:4326",
			wantCode:  "epsg:4326",
			wantWGS84: true,
		},
		{
			name:     "irish grid projected",
			label:    "TM75 / Irish Grid - epsg:29903",
			wantCode: "epsg:29903",
		},
		{
			name:      "irish grid reference sentinel",
			label:     IrishGridLabel,
			wantCode:  "epsg:29903",
			wantIrish: true,
		},
		{
			name:     "absent",
			label:    "",
			wantZero: true,
		},
		{
			name:     "whitespace only is absent",
			label:    "   ",
			wantZero: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys, err := Parse(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.wantZero, sys.IsZero())
			assert.Equal(t, tt.wantIrish, sys.IsIrishGrid())
			if !tt.wantZero {
				assert.Equal(t, tt.wantCode, sys.Code())
				assert.Equal(t, tt.wantWGS84, sys.IsWGS84())
			}
		})
	}
}

func TestParseRejectsLabelWithoutCode(t *testing.T) {
	_, err := Parse("British National Grid")
	assert.Error(t, err)
}

// The sentinel label must never carry an epsg marker: grid references are
// resolved through the codec, not handed to the transform library.
func TestSentinelLabelHasNoCodeMarker(t *testing.T) {
	assert.NotContains(t, IrishGridLabel, "epsg:")
}

func TestInputColumns(t *testing.T) {
	irish, err := Parse(IrishGridLabel)
	require.NoError(t, err)
	wgs, err := Parse("WGS 84 - epsg:4326")
	require.NoError(t, err)

	gridCols := InputColumns(irish)
	require.Len(t, gridCols, 2)
	assert.Equal(t, "grid_ref", gridCols[0].FieldID)
	assert.Equal(t, KindText, gridCols[0].Kind)
	assert.Equal(t, "id", gridCols[1].FieldID)

	numCols := InputColumns(wgs)
	require.Len(t, numCols, 3)
	assert.Equal(t, "x_src", numCols[0].FieldID)
	assert.Equal(t, KindNumeric, numCols[0].Kind)
	assert.Equal(t, "y_src", numCols[1].FieldID)
	assert.Equal(t, KindNumeric, numCols[1].Kind)
	assert.Equal(t, "id", numCols[2].FieldID)
}

func TestOutputColumns(t *testing.T) {
	irish, err := Parse(IrishGridLabel)
	require.NoError(t, err)
	utm, err := Parse("WGS 84 / UTM zone 29N - epsg:32629")
	require.NoError(t, err)

	assert.Equal(t, "grid_ref", OutputColumns(irish)[0].FieldID)

	numCols := OutputColumns(utm)
	require.Len(t, numCols, 3)
	assert.Equal(t, "x_res", numCols[0].FieldID)
	assert.Equal(t, "y_res", numCols[1].FieldID)
}
