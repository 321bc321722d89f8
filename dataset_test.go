// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlutil

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/bxcodec/faker/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatasetAppend(t *testing.T) {
	ds := NewDataset("name", "email", "age")
	names := make([]string, 5)
	for i := range names {
		names[i] = faker.Name()
		require.NoError(t, ds.AppendRow(names[i], faker.Email(), i+20))
	}
	require.NoError(t, ds.AppendRecord(map[string]any{"name": "nobody"}))

	assert.Equal(t, 3, ds.Width())
	assert.Equal(t, 6, ds.Len())
	for i, name := range names {
		v, ok := ds.Value(i, "name")
		require.True(t, ok)
		assert.Equal(t, name, v)
	}
	assert.Equal(t, []any{"nobody", nil, nil}, ds.Row(5))

	_, ok := ds.Value(0, "missing")
	assert.False(t, ok)
	_, ok = ds.Value(6, "name")
	assert.False(t, ok)

	assert.ErrorIs(t, ds.AppendRow("too", "few"), ErrRowWidth)
	assert.ErrorIs(t, ds.AppendRecord(map[string]any{"name": "x", "height": 180}), ErrUnknownColumn)
	assert.Equal(t, 6, ds.Len())

	cols := ds.Columns()
	cols[0] = "changed"
	assert.Equal(t, "name", ds.Columns()[0])
}

func TestDatasetWithIndex(t *testing.T) {
	ds := NewDataset("a", "b")
	require.NoError(t, ds.AppendRow(1, 2))
	require.NoError(t, ds.AppendRow(3, nil))
	assert.False(t, ds.HasIndex())

	wi := ds.WithIndex()
	assert.Equal(t, []string{DefaultIndexName, "a", "b"}, wi.Columns())
	assert.Equal(t, []any{0, 1, 2}, wi.Row(0))
	assert.Equal(t, []any{1, 3, nil}, wi.Row(1))
	assert.Equal(t, 2, ds.Width(), "original is untouched")

	assert.ErrorIs(t, ds.SetIndex("id", []any{"x"}), ErrRowWidth)
	require.NoError(t, ds.SetIndex("id", []any{"x", "y"}))
	assert.True(t, ds.HasIndex())
	wi = ds.WithIndex()
	assert.Equal(t, []string{"id", "a", "b"}, wi.Columns())
	assert.Equal(t, []any{"y", 3, nil}, wi.Row(1))
}

func TestIsNull(t *testing.T) {
	now := time.Now()
	for _, tc := range []struct {
		v    any
		want bool
	}{
		{nil, true},
		{math.NaN(), true},
		{float32(math.NaN()), true},
		{time.Time{}, true},
		{(*time.Time)(nil), true},
		{sql.NullString{}, true},
		{sql.NullInt64{}, true},
		{sql.NullInt64{Int64: 1, Valid: true}, false},
		{"", false},
		{"None", false},
		{0, false},
		{now, false},
		{&now, false},
	} {
		assert.Equal(t, tc.want, IsNull(tc.v), "%#v", tc.v)
	}
	assert.Equal(t, "x", Normalize(sql.NullString{String: "x", Valid: true}))
}

func TestParseValue(t *testing.T) {
	for _, tc := range []struct {
		input string
		want  any
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", nil},
	} {
		assert.Equal(t, tc.want, ParseValue(tc.input), tc.input)
	}
}

func TestDatasetFromStrings(t *testing.T) {
	ds := DatasetFromStrings([][]string{{"a", "b"}, {"1", "x", "extra"}, {}}, true)
	assert.Equal(t, []string{"a", "b", ""}, ds.Columns())
	assert.Equal(t, []any{int64(1), "x", "extra"}, ds.Row(0))
	assert.Equal(t, []any{nil, nil, nil}, ds.Row(1))

	ds = DatasetFromStrings([][]string{{"a", "b"}}, false)
	assert.Equal(t, []string{"0", "1"}, ds.Columns())
	assert.Equal(t, 1, ds.Len())
}
