// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlutil

import (
	"database/sql/driver"
	"fmt"
	"iter"
	"math"
	"slices"
	"strconv"
	"time"
)

// DefaultIndexName is the header of a materialized row index without a name.
const DefaultIndexName = "index"

// Dataset is an ordered set of named columns and positional rows.
//
// A nil value is a null cell.
type Dataset struct {
	columns   []string
	rows      [][]any
	index     []any
	indexName string
}

// NewDataset returns an empty dataset with the given columns.
func NewDataset(columns ...string) *Dataset {
	return &Dataset{columns: slices.Clone(columns)}
}

// Columns returns a copy of the column names.
func (ds *Dataset) Columns() []string { return slices.Clone(ds.columns) }

// Width is the number of columns.
func (ds *Dataset) Width() int { return len(ds.columns) }

// Len is the number of rows.
func (ds *Dataset) Len() int { return len(ds.rows) }

// AppendRow appends one row, given positionally.
func (ds *Dataset) AppendRow(values ...any) error {
	if len(values) != len(ds.columns) {
		return fmt.Errorf("%w: got %d values for %d columns", ErrRowWidth, len(values), len(ds.columns))
	}
	ds.appendRow(slices.Clone(values))
	return nil
}

// appendRow keeps the index as long as the rows: new rows get a nil label.
func (ds *Dataset) appendRow(row []any) {
	ds.rows = append(ds.rows, row)
	if ds.index != nil {
		ds.index = append(ds.index, nil)
	}
}

// AppendRecord appends one row given by column name. Missing columns are null.
func (ds *Dataset) AppendRecord(rec map[string]any) error {
	row := make([]any, len(ds.columns))
	seen := 0
	for i, c := range ds.columns {
		if v, ok := rec[c]; ok {
			row[i] = v
			seen++
		}
	}
	if seen != len(rec) {
		for k := range rec {
			if !slices.Contains(ds.columns, k) {
				return fmt.Errorf("%w: %q", ErrUnknownColumn, k)
			}
		}
	}
	ds.appendRow(row)
	return nil
}

// Row returns a copy of the i-th row.
func (ds *Dataset) Row(i int) []any { return slices.Clone(ds.rows[i]) }

// Value returns the value of the named column in the i-th row.
func (ds *Dataset) Value(i int, column string) (any, bool) {
	j := slices.Index(ds.columns, column)
	if j < 0 || i < 0 || i >= len(ds.rows) {
		return nil, false
	}
	return ds.rows[i][j], true
}

// Records yields the rows in order. The yielded slices must not be modified.
func (ds *Dataset) Records() iter.Seq2[int, []any] {
	return func(yield func(int, []any) bool) {
		for i, row := range ds.rows {
			if !yield(i, row) {
				return
			}
		}
	}
}

// SetIndex sets the row index labels; there must be one label per row.
// Rows appended later get a nil label.
func (ds *Dataset) SetIndex(name string, labels []any) error {
	if len(labels) != len(ds.rows) {
		return fmt.Errorf("%w: got %d index labels for %d rows", ErrRowWidth, len(labels), len(ds.rows))
	}
	ds.indexName, ds.index = name, slices.Clone(labels)
	return nil
}

// HasIndex reports whether explicit index labels were set.
func (ds *Dataset) HasIndex() bool { return ds.index != nil }

// WithIndex returns a new dataset with the row index as its leading column.
// Without explicit labels the index is the row position, starting at 0.
func (ds *Dataset) WithIndex() *Dataset {
	name := ds.indexName
	if name == "" {
		name = DefaultIndexName
	}
	out := &Dataset{
		columns: append([]string{name}, ds.columns...),
		rows:    make([][]any, len(ds.rows)),
	}
	for i, row := range ds.rows {
		var label any = i
		if ds.index != nil {
			label = nil
			if i < len(ds.index) {
				label = ds.index[i]
			}
		}
		out.rows[i] = append([]any{label}, row...)
	}
	return out
}

// IsNull reports whether v should be written as an empty cell.
func IsNull(v any) bool {
	return Normalize(v) == nil
}

// Normalize unwraps driver.Valuers and maps null-like values
// (nil, NaN, zero time, invalid sql.Null*) to nil.
func Normalize(v any) any {
	if vr, ok := v.(driver.Valuer); ok {
		vv, err := vr.Value()
		if err == nil {
			v = vv
		}
	}
	switch x := v.(type) {
	case nil:
		return nil
	case float64:
		if math.IsNaN(x) {
			return nil
		}
	case float32:
		if math.IsNaN(float64(x)) {
			return nil
		}
	case time.Time:
		if x.IsZero() {
			return nil
		}
	case *time.Time:
		if x == nil || x.IsZero() {
			return nil
		}
		return *x
	}
	return v
}

// ParseValue types a cell's text: "" is null, then int64, float64, or the string itself.
func ParseValue(s string) any {
	if s == "" {
		return nil
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
