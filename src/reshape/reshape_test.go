package reshape

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benchview/benchview/src/table"
)

func sampleTable(t *testing.T) *table.Table {
	t.Helper()
	tbl, err := table.New([]table.Column{
		{Name: "x", Values: []float64{0, 1, 2}, Numeric: true},
		{Name: "y1", Values: []float64{3, 4, 5}, Numeric: true},
		{Name: "y2", Values: []float64{30, 40, 50}, Numeric: true},
	})
	require.NoError(t, err)
	return tbl
}

func TestMeltTwoSeries(t *testing.T) {
	l, err := Melt(sampleTable(t), "x", []string{"y1", "y2"})
	require.NoError(t, err)

	require.Equal(t, 6, l.Len())
	// Index-major: both series for row 0, then row 1, then row 2.
	assert.Equal(t, []float64{0, 0, 1, 1, 2, 2}, l.Index)
	assert.Equal(t, []string{"y1", "y2", "y1", "y2", "y1", "y2"}, l.Series)
	assert.Equal(t, []float64{3, 30, 4, 40, 5, 50}, l.Value)
	assert.Equal(t, []string{"y1", "y2"}, l.SeriesNames())
}

func TestMeltSingleSeries(t *testing.T) {
	l, err := Melt(sampleTable(t), "x", []string{"y2"})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []float64{30, 40, 50}, l.Value)
}

func TestMeltRowCount(t *testing.T) {
	tbl := sampleTable(t)
	for _, sel := range [][]string{nil, {"y1"}, {"y1", "y2"}} {
		l, err := Melt(tbl, "x", sel)
		require.NoError(t, err)
		assert.Equal(t, tbl.NumRows()*len(sel), l.Len())
		assert.Len(t, l.Series, l.Len())
		assert.Len(t, l.Value, l.Len())
	}
}

func TestMeltSkipsUnknownNames(t *testing.T) {
	// A selection can be stale after a reload changed the schema.
	l, err := Melt(sampleTable(t), "x", []string{"y1", "gone"})
	require.NoError(t, err)
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, []string{"y1"}, l.SeriesNames())
}

func TestMeltSkipsIndexInSelection(t *testing.T) {
	l, err := Melt(sampleTable(t), "x", []string{"x", "y1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"y1"}, l.SeriesNames())
}

func TestMeltMissingIndexFails(t *testing.T) {
	_, err := Melt(sampleTable(t), "t", []string{"y1"})
	assert.Error(t, err)
}

func TestMeltNonNumericCellsBecomeNaN(t *testing.T) {
	tbl, err := table.New([]table.Column{
		{Name: "i", Values: []float64{0, 1}, Numeric: true},
		{Name: "label", Text: []string{"a", "b"}},
	})
	require.NoError(t, err)
	l, err := Melt(tbl, "i", []string{"label"})
	require.NoError(t, err)
	require.Equal(t, 2, l.Len())
	assert.True(t, math.IsNaN(l.Value[0]))
	assert.True(t, math.IsNaN(l.Value[1]))
}

func TestMeltDeterministic(t *testing.T) {
	tbl := sampleTable(t)
	a, err := Melt(tbl, "x", []string{"y1", "y2"})
	require.NoError(t, err)
	b, err := Melt(tbl, "x", []string{"y1", "y2"})
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
