// Copyright 2020, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xlutil treats a spreadsheet workbook as a mapping from sheet names
// to tables, and pastes tabular data onto worksheets as named tables.
package xlutil

import (
	"io"
)

// Writer writes the spreadsheet consisting of the sheets created
// with NewSheet. The write finishes when Close is called.
//
// The writer SHOULD allow writing to separate sheets concurrently,
// and document if it does not provide this functionality.
type Writer interface {
	io.Closer
	NewSheet(name string, cols []Column) (Sheet, error)
}

// Sheet should be Closed when finished.
type Sheet interface {
	io.Closer
	AppendRow(values ...any) error
}

// Worksheet is a single sheet of an opened workbook that can be pasted onto.
type Worksheet interface {
	Name() string
	// Cell returns the formatted value of the cell, "" for an empty cell.
	Cell(axis string) (string, error)
	// SetCell sets the cell's value; nil leaves the cell empty.
	SetCell(axis string, value any) error
	// Tables returns the names of the tables of the whole workbook.
	Tables() ([]string, error)
	// AddTable registers the region as a table.
	// It must return an error wrapping ErrDuplicateTableName when the name is taken.
	AddTable(Region) error
}

// Style is a style for a column/row/cell.
type Style struct {
	// Format is the number format
	Format string
	// FontBold is true if the font is bold
	FontBold bool
}

// Column contains the Name of the column and header's style and column's style.
type Column struct {
	Name           string
	Header, Column Style
}

// TableStyle is the visual style of a registered table.
type TableStyle struct {
	Name                      string
	RowStripes, ColumnStripes bool
	FirstColumn, LastColumn   bool
}

// DefaultTableStyle is the one style pasted tables get: medium blue with banded rows and columns.
var DefaultTableStyle = TableStyle{
	Name:          "TableStyleMedium9",
	RowStripes:    true,
	ColumnStripes: true,
}

// Region is a rectangle of a worksheet registered as a named table.
type Region struct {
	Name                 string
	TopLeft, BottomRight CellAddress
	Style                TableStyle
}

// Ref returns the region as "A1:C9".
func (r Region) Ref() string { return r.TopLeft.String() + ":" + r.BottomRight.String() }

// Number is a string that contains a number.
type Number string
