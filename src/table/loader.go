package table

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/csv"
)

// Load reads the tab-separated file at path into a Table. The first row is
// the header. Every call re-reads the file from disk; nothing is cached, so
// external writers are picked up on the next load.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrFileUnreadable, path, err)
	}
	defer f.Close()

	// The inferring reader types each column from the data (int64, float64,
	// bool, timestamps, else string). A single chunk keeps one record for
	// the whole file.
	rdr := csv.NewInferringReader(f,
		csv.WithComma('\t'),
		csv.WithHeader(true),
		csv.WithChunk(-1),
		csv.WithNullReader(true, "", "NA", "NaN"),
	)
	defer rdr.Release()

	if !rdr.Next() {
		if err := rdr.Err(); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
		}
		return nil, fmt.Errorf("%w: %s: no data rows", ErrParse, path)
	}
	rec := rdr.Record()
	rec.Retain()
	defer rec.Release()
	if err := rdr.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
	}

	cols := make([]Column, 0, rec.NumCols())
	for i := 0; i < int(rec.NumCols()); i++ {
		col, err := materialize(rec.ColumnName(i), rec.Column(i))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrParse, path, err)
		}
		cols = append(cols, col)
	}
	t, err := New(cols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// materialize converts one Arrow array into a plain Column so nothing
// downstream has to deal with Arrow retain/release semantics.
func materialize(name string, arr arrow.Array) (Column, error) {
	n := arr.Len()
	switch a := arr.(type) {
	case *array.Int64:
		vals := make([]float64, n)
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				vals[i] = math.NaN()
				continue
			}
			vals[i] = float64(a.Value(i))
		}
		return Column{Name: name, Values: vals, Numeric: true}, nil
	case *array.Float64:
		vals := make([]float64, n)
		for i := 0; i < n; i++ {
			if a.IsNull(i) {
				vals[i] = math.NaN()
				continue
			}
			vals[i] = a.Value(i)
		}
		return Column{Name: name, Values: vals, Numeric: true}, nil
	case *array.Boolean:
		vals := make([]float64, n)
		for i := 0; i < n; i++ {
			switch {
			case a.IsNull(i):
				vals[i] = math.NaN()
			case a.Value(i):
				vals[i] = 1
			default:
				vals[i] = 0
			}
		}
		return Column{Name: name, Values: vals, Numeric: true}, nil
	case *array.String:
		text := make([]string, n)
		for i := 0; i < n; i++ {
			if !a.IsNull(i) {
				text[i] = a.Value(i)
			}
		}
		return Column{Name: name, Text: text}, nil
	case *array.Timestamp, *array.Date32, *array.Time32:
		text := make([]string, n)
		for i := 0; i < n; i++ {
			if !arr.IsNull(i) {
				text[i] = arr.ValueStr(i)
			}
		}
		return Column{Name: name, Text: text}, nil
	default:
		return Column{}, fmt.Errorf("column %q has unsupported type %s", name, arr.DataType())
	}
}
