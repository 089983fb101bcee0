// Package reshape turns a wide table (one column per series) into the long
// form required for multi-series color-encoded line charts: one row per
// (index, series, value) triple.
package reshape

import (
	"fmt"
	"math"

	"github.com/benchview/benchview/src/table"
)

// Long is the melted table. The three slices are parallel; one entry per
// observation. Rows are index-major: all selected series for row 0, then
// row 1, and so on, with the selected-column order preserved within a row.
type Long struct {
	Index  []float64
	Series []string
	Value  []float64
}

// Len returns the number of long-form rows.
func (l *Long) Len() int { return len(l.Index) }

// SeriesNames returns the distinct series names in first-appearance order.
func (l *Long) SeriesNames() []string {
	seen := make(map[string]struct{}, 4)
	var out []string
	for _, s := range l.Series {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Melt restricts the table to the selected columns and emits one long row
// per (table row x selected column). Selected names missing from the table
// are skipped without error: the selection may be stale relative to a just
// reloaded file with a different schema. Non-numeric cells become NaN
// observations so row accounting stays exact.
func Melt(t *table.Table, indexName string, selected []string) (*Long, error) {
	idx, ok := t.Column(indexName)
	if !ok {
		return nil, fmt.Errorf("index column %q not in table", indexName)
	}
	present := make([]table.Column, 0, len(selected))
	for _, name := range selected {
		if name == indexName {
			continue
		}
		if c, ok := t.Column(name); ok {
			present = append(present, c)
		}
	}
	rows := t.NumRows()
	n := rows * len(present)
	out := &Long{
		Index:  make([]float64, 0, n),
		Series: make([]string, 0, n),
		Value:  make([]float64, 0, n),
	}
	for r := 0; r < rows; r++ {
		iv := indexValue(idx, r)
		for _, c := range present {
			v := math.NaN()
			if c.Numeric {
				v = c.Values[r]
			}
			out.Index = append(out.Index, iv)
			out.Series = append(out.Series, c.Name)
			out.Value = append(out.Value, v)
		}
	}
	return out, nil
}

func indexValue(c table.Column, row int) float64 {
	if c.Numeric {
		return c.Values[row]
	}
	// A non-numeric index still orders the chart by position.
	return float64(row)
}
