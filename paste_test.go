// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlutil

import (
	"fmt"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSheet struct {
	cells  map[string]any
	tables []Region
	writes []string
}

func newMemSheet() *memSheet { return &memSheet{cells: make(map[string]any)} }

func (ms *memSheet) Name() string { return "mem" }
func (ms *memSheet) Cell(axis string) (string, error) {
	v, ok := ms.cells[axis]
	if !ok || v == nil {
		return "", nil
	}
	return fmt.Sprint(v), nil
}
func (ms *memSheet) SetCell(axis string, value any) error {
	ms.writes = append(ms.writes, axis)
	if value == nil {
		delete(ms.cells, axis)
		return nil
	}
	ms.cells[axis] = value
	return nil
}
func (ms *memSheet) Tables() ([]string, error) {
	names := make([]string, 0, len(ms.tables))
	for _, r := range ms.tables {
		names = append(names, r.Name)
	}
	return names, nil
}
func (ms *memSheet) AddTable(r Region) error {
	if names, _ := ms.Tables(); slices.Contains(names, r.Name) {
		return &TableNameError{Name: r.Name}
	}
	ms.tables = append(ms.tables, r)
	return nil
}

func twoColumns(t *testing.T, rows int) *Dataset {
	t.Helper()
	ds := NewDataset("name", "qty")
	for i := range rows {
		require.NoError(t, ds.AppendRow(fmt.Sprintf("item%d", i+1), i+1))
	}
	return ds
}

func TestPasteEmptySheet(t *testing.T) {
	ms := newMemSheet()
	region, err := Paste(ms, twoColumns(t, 2), "Items", "A1", PasteOptions{})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"A1": "name", "B1": "qty",
		"A2": "item1", "B2": 1,
		"A3": "item2", "B3": 2,
	}, ms.cells)
	assert.Equal(t, "A1:B3", region.Ref())
	assert.Equal(t, "Items", region.Name)
	assert.Equal(t, DefaultTableStyle, region.Style)
	require.Len(t, ms.tables, 1)
	assert.Equal(t, region, ms.tables[0])
	assert.Equal(t, []string{"A1", "B1", "A2", "B2", "A3", "B3"}, ms.writes)
}

func TestPasteOffset(t *testing.T) {
	ms := newMemSheet()
	region, err := Paste(ms, twoColumns(t, 3), "Items", "z10", PasteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Z10:AA13", region.Ref())
	assert.Equal(t, "qty", ms.cells["AA10"])
	assert.Equal(t, 3, ms.cells["AA13"])
}

func TestPasteOccupied(t *testing.T) {
	ms := newMemSheet()
	ms.cells["B1"] = "taken"
	_, err := Paste(ms, twoColumns(t, 2), "Items", "A1", PasteOptions{})
	var occupied *CellOccupiedError
	require.ErrorAs(t, err, &occupied)
	assert.Equal(t, "B1", occupied.Cell)
	assert.ErrorIs(t, err, ErrCellOccupied)
	// partial writes stay
	assert.Equal(t, "name", ms.cells["A1"])
	assert.Equal(t, "taken", ms.cells["B1"])
	assert.Empty(t, ms.tables)

	region, err := Paste(ms, twoColumns(t, 2), "Items", "A1", PasteOptions{Overwrite: true})
	require.NoError(t, err)
	assert.Equal(t, "qty", ms.cells["B1"])
	assert.Equal(t, "A1:B3", region.Ref())
}

func TestPasteOccupiedDataCell(t *testing.T) {
	ms := newMemSheet()
	ms.cells["A3"] = 0
	_, err := Paste(ms, twoColumns(t, 2), "Items", "A1", PasteOptions{})
	var occupied *CellOccupiedError
	require.ErrorAs(t, err, &occupied)
	assert.Equal(t, "A3", occupied.Cell)
	assert.Equal(t, []string{"A1", "B1", "A2", "B2"}, ms.writes)
}

func TestPasteNulls(t *testing.T) {
	ds := NewDataset("a", "b")
	require.NoError(t, ds.AppendRow(nil, math.NaN()))
	require.NoError(t, ds.AppendRow("x", 1.5))

	ms := newMemSheet()
	ms.cells["A2"] = "old"
	_, err := Paste(ms, ds, "T", "A1", PasteOptions{Overwrite: true})
	require.NoError(t, err)
	for _, axis := range []string{"A2", "B2"} {
		s, err := ms.Cell(axis)
		require.NoError(t, err)
		assert.Empty(t, s, axis)
	}
	assert.Equal(t, 1.5, ms.cells["B3"])
}

func TestPasteDuplicateTable(t *testing.T) {
	for _, overwrite := range []bool{false, true} {
		ms := newMemSheet()
		ms.tables = append(ms.tables, Region{Name: "Items"})
		_, err := Paste(ms, twoColumns(t, 1), "Items", "D4", PasteOptions{Overwrite: overwrite})
		var tne *TableNameError
		require.ErrorAs(t, err, &tne, "overwrite=%t", overwrite)
		assert.Equal(t, "Items", tne.Name)
		assert.ErrorIs(t, err, ErrDuplicateTableName)
		assert.Empty(t, ms.writes, "nothing written before the name check")
	}
}

func TestPasteIndex(t *testing.T) {
	ds := twoColumns(t, 2)
	require.NoError(t, ds.SetIndex("id", []any{"r1", "r2"}))

	ms := newMemSheet()
	region, err := Paste(ms, ds, "T", "B2", PasteOptions{Index: true})
	require.NoError(t, err)
	assert.Equal(t, "B2:D4", region.Ref())
	assert.Equal(t, "id", ms.cells["B2"])
	assert.Equal(t, "name", ms.cells["C2"])
	assert.Equal(t, "r2", ms.cells["B4"])
	assert.Equal(t, 2, ms.cells["D4"])

	// the index column takes part in the occupancy check
	ms = newMemSheet()
	ms.cells["B3"] = "x"
	_, err = Paste(ms, twoColumns(t, 2), "T", "B2", PasteOptions{Index: true})
	var occupied *CellOccupiedError
	require.ErrorAs(t, err, &occupied)
	assert.Equal(t, "B3", occupied.Cell)
}

func TestPasteInvalid(t *testing.T) {
	ms := newMemSheet()
	_, err := Paste(ms, nil, "T", "A1", PasteOptions{})
	assert.ErrorIs(t, err, ErrEmptyDataset)
	_, err = Paste(ms, NewDataset(), "T", "A1", PasteOptions{})
	assert.ErrorIs(t, err, ErrEmptyDataset)
	_, err = Paste(ms, twoColumns(t, 1), "T", "A0", PasteOptions{})
	assert.ErrorIs(t, err, ErrInvalidAddress)
	_, err = Paste(ms, twoColumns(t, 1), "T", "XFD1", PasteOptions{})
	assert.ErrorIs(t, err, ErrColumnOverflow)
	_, err = Paste(ms, twoColumns(t, 1), "T", "XFC1", PasteOptions{Index: true})
	assert.ErrorIs(t, err, ErrColumnOverflow)
	_, err = Paste(ms, twoColumns(t, 1), "T", "A1048576", PasteOptions{})
	assert.ErrorIs(t, err, ErrRowOverflow)
	assert.Empty(t, ms.writes)

	_, err = Paste(ms, twoColumns(t, 0), "T", "XFC1048576", PasteOptions{})
	assert.ErrorIs(t, err, ErrRowOverflow)
	assert.Empty(t, ms.writes)

	region, err := Paste(ms, twoColumns(t, 0), "T", "XFC1048575", PasteOptions{})
	require.NoError(t, err)
	assert.Equal(t, "XFC1048575:XFD1048576", region.Ref())
	assert.Equal(t, []string{"XFC1048575", "XFD1048575", "XFC1048576", "XFD1048576"}, ms.writes)
}

func TestPasteIndexAfterAppend(t *testing.T) {
	ds := NewDataset("a")
	require.NoError(t, ds.AppendRow(1))
	require.NoError(t, ds.SetIndex("id", []any{"r1"}))
	require.NoError(t, ds.AppendRow(2))
	require.NoError(t, ds.AppendRecord(map[string]any{"a": 3}))

	ms := newMemSheet()
	region, err := Paste(ms, ds, "T", "A1", PasteOptions{Index: true})
	require.NoError(t, err)
	assert.Equal(t, "A1:B4", region.Ref())
	assert.Equal(t, "r1", ms.cells["A2"])
	assert.NotContains(t, ms.cells, "A3", "appended rows have no label")
	assert.Equal(t, 3, ms.cells["B4"])

	b := NewBook()
	require.NoError(t, b.Set("s", ds))
	var w recWriter
	require.NoError(t, b.Write(&w))
	assert.Equal(t, [][]any{{"r1", 1}, {nil, 2}, {nil, 3}}, w.sheets["s"].rows)
}
