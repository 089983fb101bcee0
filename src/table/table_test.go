package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numCol(name string, vals ...float64) Column {
	return Column{Name: name, Values: vals, Numeric: true}
}

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New([]Column{numCol("x", 1), numCol("x", 2)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestNewRejectsRaggedColumns(t *testing.T) {
	_, err := New([]Column{numCol("x", 1, 2), numCol("y", 1)})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParse)
}

func TestNewRejectsEmpty(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrParse)
}

func TestIndexColumnSingle(t *testing.T) {
	for _, name := range []string{"x", "i"} {
		tbl, err := New([]Column{numCol(name, 0, 1), numCol("y1", 3, 4)})
		require.NoError(t, err)
		idx, err := tbl.IndexColumn()
		require.NoError(t, err)
		assert.Equal(t, name, idx)
	}
}

func TestIndexColumnBothPresentFails(t *testing.T) {
	tbl, err := New([]Column{numCol("x", 0), numCol("i", 0), numCol("y1", 1)})
	require.NoError(t, err)
	_, err = tbl.IndexColumn()
	assert.ErrorIs(t, err, ErrAmbiguousIndex)
}

func TestIndexColumnNonePresentFails(t *testing.T) {
	tbl, err := New([]Column{numCol("a", 0), numCol("b", 1)})
	require.NoError(t, err)
	_, err = tbl.IndexColumn()
	assert.ErrorIs(t, err, ErrAmbiguousIndex)
}

func TestSelectableExcludesIndexAndSorts(t *testing.T) {
	tbl, err := New([]Column{numCol("y2", 1), numCol("i", 0), numCol("y1", 2)})
	require.NoError(t, err)
	assert.Equal(t, []string{"y1", "y2"}, Selectable(tbl, "i"))
}

func TestValueLookup(t *testing.T) {
	tbl, err := New([]Column{
		numCol("x", 0, 1),
		{Name: "label", Text: []string{"a", "b"}},
	})
	require.NoError(t, err)

	v, ok := tbl.Value("x", 1)
	assert.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = tbl.Value("label", 0)
	assert.False(t, ok, "non-numeric cells report not-ok")
	_, ok = tbl.Value("missing", 0)
	assert.False(t, ok)
	_, ok = tbl.Value("x", 99)
	assert.False(t, ok)
}
