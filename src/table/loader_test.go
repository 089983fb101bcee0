package table

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTabSeparated(t *testing.T) {
	path := writeFile(t, "data.csv", "x\ty1\ty2\n0\t3\t30\n1\t4\t40\n2\t5\t50\n")

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.NumRows())
	assert.Equal(t, []string{"x", "y1", "y2"}, tbl.ColumnNames())

	idx, err := tbl.IndexColumn()
	require.NoError(t, err)
	assert.Equal(t, "x", idx)

	v, ok := tbl.Value("y2", 1)
	assert.True(t, ok)
	assert.Equal(t, 40.0, v)
}

func TestLoadFloats(t *testing.T) {
	path := writeFile(t, "data.csv", "i\tlatency\n0\t1.5\n1\t2.25\n")

	tbl, err := Load(path)
	require.NoError(t, err)
	c, ok := tbl.Column("latency")
	require.True(t, ok)
	assert.True(t, c.Numeric)
	assert.Equal(t, []float64{1.5, 2.25}, c.Values)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestLoadRaggedRows(t *testing.T) {
	path := writeFile(t, "bad.csv", "x\ty1\n0\t1\n1\t2\t3\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoadHeaderOnly(t *testing.T) {
	path := writeFile(t, "empty.csv", "x\ty1\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoadNonNumericColumnKeptAsText(t *testing.T) {
	path := writeFile(t, "mixed.csv", "x\tname\ty1\n0\talpha\t1\n1\tbeta\t2\n")

	tbl, err := Load(path)
	require.NoError(t, err)
	c, ok := tbl.Column("name")
	require.True(t, ok)
	assert.False(t, c.Numeric)
	assert.Equal(t, []string{"alpha", "beta"}, c.Text)
}

func TestLoadRereadsDisk(t *testing.T) {
	path := writeFile(t, "data.csv", "x\ty1\n0\t1\n")

	tbl, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.NumRows())

	require.NoError(t, os.WriteFile(path, []byte("x\ty1\n0\t1\n1\t2\n"), 0o644))
	tbl, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.NumRows())
}
