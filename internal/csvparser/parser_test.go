package csvparser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dancasey-ie/batch-coordinate-converter/internal/refsys"
	"github.com/dancasey-ie/batch-coordinate-converter/internal/types"
)

func numericCols(t *testing.T) []refsys.Column {
	t.Helper()
	sys, err := refsys.Parse("TM75 / Irish Grid - epsg:29903")
	require.NoError(t, err)
	return refsys.InputColumns(sys)
}

func gridCols(t *testing.T) []refsys.Column {
	t.Helper()
	sys, err := refsys.Parse(refsys.IrishGridLabel)
	require.NoError(t, err)
	return refsys.InputColumns(sys)
}

func TestParseReaderNumeric(t *testing.T) {
	in := strings.Join([]string{
		"x_src,y_src,id",
		"80367,84425,Corrán Tuathail",
		"335793,327689,Slieve Donard",
	}, "\n")

	batch, err := ParseReader(strings.NewReader(in), numericCols(t), Options{HasHeader: true})
	require.NoError(t, err)
	require.Len(t, batch.Rows, 2)

	assert.Equal(t, types.Coords{X: 80367, Y: 84425}, batch.Rows[0].Source)
	assert.Equal(t, "Corrán Tuathail", batch.Rows[0].ID)
	assert.Equal(t, types.Coords{X: 335793, Y: 327689}, batch.Rows[1].Source)
	assert.Equal(t, "Slieve Donard", batch.Rows[1].ID)
}

func TestParseReaderGridRef(t *testing.T) {
	in := strings.Join([]string{
		"grid_ref,id",
		"V 80367 84425,Corrán Tuathail",
		"J 35793 27689,Slieve Donard",
	}, "\n")

	batch, err := ParseReader(strings.NewReader(in), gridCols(t), Options{HasHeader: true})
	require.NoError(t, err)
	require.Len(t, batch.Rows, 2)
	assert.Equal(t, types.GridRef{Ref: "V 80367 84425"}, batch.Rows[0].Source)
	assert.Equal(t, "Slieve Donard", batch.Rows[1].ID)
}

func TestParseReaderKeepsEmptyRowPosition(t *testing.T) {
	in := strings.Join([]string{
		"1,2,a",
		",,",
		"3,4,b",
	}, "\n")

	batch, err := ParseReader(strings.NewReader(in), numericCols(t), Options{})
	require.NoError(t, err)
	require.Len(t, batch.Rows, 3)
	assert.False(t, batch.Rows[0].Empty())
	assert.True(t, batch.Rows[1].Empty())
	assert.False(t, batch.Rows[2].Empty())
	assert.Equal(t, 1, batch.Limit())
}

func TestParseReaderBlankLineIsEmptyRow(t *testing.T) {
	// A bare blank line, not just a ",," record, must survive as the
	// empty-row sentinel so rows after the gap stay unprocessed.
	batch, err := ParseReader(strings.NewReader("1,2,a\n\n3,4,b\n"), numericCols(t), Options{})
	require.NoError(t, err)
	require.Len(t, batch.Rows, 3)
	assert.False(t, batch.Rows[0].Empty())
	assert.True(t, batch.Rows[1].Empty())
	assert.False(t, batch.Rows[2].Empty())
	assert.Equal(t, 1, batch.Limit())
}

func TestParseReaderShortRecords(t *testing.T) {
	batch, err := ParseReader(strings.NewReader("5,6\n"), numericCols(t), Options{})
	require.NoError(t, err)
	require.Len(t, batch.Rows, 1)
	assert.Equal(t, types.Coords{X: 5, Y: 6}, batch.Rows[0].Source)
	assert.Equal(t, "", batch.Rows[0].ID)
}

func TestParseReaderBadNumber(t *testing.T) {
	in := "x_src,y_src,id\n80367,not-a-number,x\n"
	_, err := ParseReader(strings.NewReader(in), numericCols(t), Options{HasHeader: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestParseReaderIncompletePair(t *testing.T) {
	_, err := ParseReader(strings.NewReader("80367,,x\n"), numericCols(t), Options{})
	assert.Error(t, err)
}

func TestParseReaderSemicolonDelimiter(t *testing.T) {
	batch, err := ParseReader(strings.NewReader("1;2;a\n"), numericCols(t), Options{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, types.Coords{X: 1, Y: 2}, batch.Rows[0].Source)
}
