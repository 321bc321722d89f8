// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlutil

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned for malformed or out-of-range cell references.
	ErrInvalidAddress = errors.New("invalid cell address")
	// ErrEmptyDataset is returned when pasting a dataset without columns.
	ErrEmptyDataset = errors.New("empty dataset")
	// ErrColumnOverflow is returned when a dataset is wider than the remaining columns.
	ErrColumnOverflow = errors.New("column overflow")
	// ErrRowOverflow is returned when a dataset is longer than the remaining rows.
	ErrRowOverflow = errors.New("row overflow")
	// ErrCellOccupied is returned when a paste would overwrite a non-empty cell.
	ErrCellOccupied = errors.New("cell occupied")
	// ErrDuplicateTableName is returned when a table name is already taken in the workbook.
	ErrDuplicateTableName = errors.New("duplicate table name")
	// ErrSheetNotFound is returned for a sheet name missing from the workbook.
	ErrSheetNotFound = errors.New("sheet not found")
	// ErrSheetExists is returned when adding a sheet under a taken name.
	ErrSheetExists = errors.New("sheet already exists")
	// ErrUnsupportedFileType is returned for sources with an unknown extension.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrFileNotFound is returned when the workbook or source file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrCorruptWorkbook is returned when a file cannot be read as a workbook.
	ErrCorruptWorkbook = errors.New("corrupt workbook")
	// ErrTooManyRows is returned when a sheet would grow past MaxRows.
	ErrTooManyRows = errors.New("too many rows")
	// ErrRowWidth is returned when a row or the index labels do not fit the dataset.
	ErrRowWidth = errors.New("row width mismatch")
	// ErrUnknownColumn is returned for a record naming a column the dataset lacks.
	ErrUnknownColumn = errors.New("unknown column")
)

// AddressError describes a cell reference that could not be parsed.
type AddressError struct {
	Ref    string
	Reason string
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidAddress, e.Ref, e.Reason)
}
func (e *AddressError) Unwrap() error { return ErrInvalidAddress }

// CellOccupiedError carries the cell that blocked a paste.
type CellOccupiedError struct {
	Sheet string
	Cell  string
}

func (e *CellOccupiedError) Error() string {
	if e.Sheet == "" {
		return fmt.Sprintf("%s: value already found in cell %q", ErrCellOccupied, e.Cell)
	}
	return fmt.Sprintf("%s: value already found in cell %q of sheet %q", ErrCellOccupied, e.Cell, e.Sheet)
}
func (e *CellOccupiedError) Unwrap() error { return ErrCellOccupied }

// TableNameError reports a table name collision.
type TableNameError struct {
	Name string
	Err  error
}

func (e *TableNameError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %q: %v", ErrDuplicateTableName, e.Name, e.Err)
	}
	return fmt.Sprintf("%s %q", ErrDuplicateTableName, e.Name)
}
func (e *TableNameError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDuplicateTableName}
	}
	return []error{ErrDuplicateTableName, e.Err}
}

// FileTypeError is returned when a source's extension has no reader.
type FileTypeError struct {
	Path string
	Ext  string
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("%s %q (%s)", ErrUnsupportedFileType, e.Ext, e.Path)
}
func (e *FileTypeError) Unwrap() error { return ErrUnsupportedFileType }
