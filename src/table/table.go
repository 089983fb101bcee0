// Package table holds the in-memory representation of a loaded
// tab-separated data file and the rules for picking its index column.
package table

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Reserved index column names. A valid input file carries exactly one.
var indexNames = []string{"x", "i"}

var (
	ErrFileNotFound   = errors.New("file not found")
	ErrFileUnreadable = errors.New("file unreadable")
	ErrParse          = errors.New("parse error")
	ErrAmbiguousIndex = errors.New("ambiguous index column")
)

// Column is a single named series. Numeric columns carry their values in
// Values; non-numeric columns keep the raw strings in Text and have NaN in
// Values so consumers can treat every column uniformly.
type Column struct {
	Name    string
	Values  []float64
	Text    []string
	Numeric bool
}

// Table is an ordered collection of equal-length columns with unique names.
// It is immutable after construction.
type Table struct {
	cols   []Column
	byName map[string]int
	rows   int
}

// New validates and assembles a table from columns.
func New(cols []Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: no columns", ErrParse)
	}
	rows := colLen(cols[0])
	byName := make(map[string]int, len(cols))
	for i, c := range cols {
		if c.Name == "" {
			return nil, fmt.Errorf("%w: column %d has an empty name", ErrParse, i)
		}
		if _, dup := byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate column name %q", ErrParse, c.Name)
		}
		if colLen(c) != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, expected %d", ErrParse, c.Name, colLen(c), rows)
		}
		byName[c.Name] = i
	}
	return &Table{cols: cols, byName: byName, rows: rows}, nil
}

func colLen(c Column) int {
	if c.Numeric {
		return len(c.Values)
	}
	return len(c.Text)
}

// NumRows returns the common column length.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns.
func (t *Table) NumCols() int { return len(t.cols) }

// ColumnNames returns the names in file order.
func (t *Table) ColumnNames() []string {
	out := make([]string, len(t.cols))
	for i, c := range t.cols {
		out[i] = c.Name
	}
	return out
}

// Column looks a column up by name.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Column{}, false
	}
	return t.cols[i], true
}

// Value returns the numeric value at (name, row). Non-numeric cells and
// unknown columns come back as NaN with ok=false.
func (t *Table) Value(name string, row int) (float64, bool) {
	c, ok := t.Column(name)
	if !ok || row < 0 || row >= t.rows {
		return math.NaN(), false
	}
	if !c.Numeric {
		return math.NaN(), false
	}
	v := c.Values[row]
	return v, !math.IsNaN(v)
}

// IndexColumn returns the reserved index column name present in the table.
// Zero or more than one present is an error; the message names what was
// found so the user can fix the file.
func (t *Table) IndexColumn() (string, error) {
	var present []string
	for _, n := range indexNames {
		if _, ok := t.byName[n]; ok {
			present = append(present, n)
		}
	}
	switch len(present) {
	case 1:
		return present[0], nil
	case 0:
		return "", fmt.Errorf("%w: none of %s present", ErrAmbiguousIndex, quoteList(indexNames))
	default:
		return "", fmt.Errorf("%w: multiple index columns present (%s)", ErrAmbiguousIndex, quoteList(present))
	}
}

// Selectable returns the plottable column names: everything except the
// index column, sorted for deterministic presentation.
func Selectable(t *Table, indexName string) []string {
	out := make([]string, 0, len(t.cols))
	for _, c := range t.cols {
		if c.Name == indexName {
			continue
		}
		out = append(out, c.Name)
	}
	sort.Strings(out)
	return out
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}
