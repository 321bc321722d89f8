// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlutil

import (
	"fmt"
	"slices"
	"strconv"
)

// PasteOptions modifies Paste.
type PasteOptions struct {
	// Overwrite allows replacing non-empty cells.
	Overwrite bool
	// Index pastes the dataset's row index as an extra leading column.
	Index bool
}

// Paste writes ds onto ws with its header row at the cell referenced by at,
// then registers the written rectangle as a table named tableName.
//
// Unless opts.Overwrite is set, Paste stops with a *CellOccupiedError at the
// first non-empty target cell. Cells written before that are left in place.
// The table name is checked before anything is written, regardless of opts.Overwrite.
// A dataset without rows still gets one empty data row in its table.
func Paste(ws Worksheet, ds *Dataset, tableName, at string, opts PasteOptions) (Region, error) {
	if ds == nil || ds.Width() == 0 {
		return Region{}, ErrEmptyDataset
	}
	topLeft, err := ParseCell(at)
	if err != nil {
		return Region{}, err
	}
	if opts.Index {
		ds = ds.WithIndex()
	}
	cols, err := ColumnRange(topLeft.Col(), ds.Width())
	if err != nil {
		return Region{}, fmt.Errorf("paste %d columns at %s: %w", ds.Width(), topLeft, err)
	}
	// A table needs at least one data row, so a header-only paste
	// covers one blank row below the header.
	dataRows := max(ds.Len(), 1)
	lastRow := topLeft.Row + dataRows
	if lastRow > MaxRows {
		return Region{}, fmt.Errorf("%w: %d rows at %s end after row %d", ErrRowOverflow, dataRows, topLeft, MaxRows)
	}

	tables, err := ws.Tables()
	if err != nil {
		return Region{}, fmt.Errorf("list tables: %w", err)
	}
	if slices.Contains(tables, tableName) {
		return Region{}, &TableNameError{Name: tableName}
	}

	set := func(axis string, v any) error {
		if !opts.Overwrite {
			old, err := ws.Cell(axis)
			if err != nil {
				return fmt.Errorf("%s: %w", axis, err)
			}
			if old != "" {
				return &CellOccupiedError{Sheet: ws.Name(), Cell: axis}
			}
		}
		if err := ws.SetCell(axis, Normalize(v)); err != nil {
			return fmt.Errorf("%s: %w", axis, err)
		}
		return nil
	}

	row := strconv.Itoa(topLeft.Row)
	for i, name := range ds.columns {
		if err := set(cols[i]+row, name); err != nil {
			return Region{}, err
		}
	}
	for r, values := range ds.Records() {
		row = strconv.Itoa(topLeft.Row + 1 + r)
		for i, v := range values {
			if err := set(cols[i]+row, v); err != nil {
				return Region{}, err
			}
		}
	}
	if ds.Len() == 0 {
		row = strconv.Itoa(lastRow)
		for _, col := range cols {
			if err := set(col+row, nil); err != nil {
				return Region{}, err
			}
		}
	}

	region := Region{
		Name:        tableName,
		TopLeft:     topLeft,
		BottomRight: CellAddress{Column: cols[len(cols)-1], Row: lastRow},
		Style:       DefaultTableStyle,
	}
	if err := ws.AddTable(region); err != nil {
		return region, fmt.Errorf("add table %q at %s: %w", tableName, region.Ref(), err)
	}
	return region, nil
}
