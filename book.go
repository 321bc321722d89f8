// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlutil

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// SheetOptions modifies Book.Add.
type SheetOptions struct {
	// Replace allows replacing an existing sheet of the same name, keeping its position.
	Replace bool
	// Index writes the row index as the leading column.
	Index bool
}

// Book is an in-memory workbook: an ordered mapping from sheet names to datasets.
//
// A Book is not safe for concurrent use.
type Book struct {
	sheets map[string]*Dataset
	index  map[string]bool
	names  []string
}

// NewBook returns an empty Book.
func NewBook() *Book {
	return &Book{sheets: make(map[string]*Dataset), index: make(map[string]bool)}
}

// Add adds the dataset as a sheet.
func (b *Book) Add(name string, ds *Dataset, opts SheetOptions) error {
	if ds == nil {
		return fmt.Errorf("sheet %q: %w", name, ErrEmptyDataset)
	}
	if _, ok := b.sheets[name]; ok {
		if !opts.Replace {
			return fmt.Errorf("%w: %q", ErrSheetExists, name)
		}
	} else {
		b.names = append(b.names, name)
	}
	b.sheets[name] = ds
	b.index[name] = opts.Index
	return nil
}

// Set adds or replaces the named sheet.
// The row index is written only if the dataset has explicit index labels.
func (b *Book) Set(name string, ds *Dataset) error {
	return b.Add(name, ds, SheetOptions{Replace: true, Index: ds != nil && ds.HasIndex()})
}

// Get returns the named sheet.
func (b *Book) Get(name string) (*Dataset, error) {
	ds, ok := b.sheets[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	return ds, nil
}

// Delete removes the named sheet.
func (b *Book) Delete(name string) error {
	if _, ok := b.sheets[name]; !ok {
		return fmt.Errorf("%w: %q", ErrSheetNotFound, name)
	}
	delete(b.sheets, name)
	delete(b.index, name)
	b.names = slices.DeleteFunc(b.names, func(s string) bool { return s == name })
	return nil
}

// Len returns the number of sheets.
func (b *Book) Len() int { return len(b.names) }

// Names returns the sheet names in insertion order.
func (b *Book) Names() []string { return slices.Clone(b.names) }

// All yields the sheets in insertion order.
// Every range over the returned sequence starts from the first sheet.
func (b *Book) All() iter.Seq2[string, *Dataset] {
	return func(yield func(string, *Dataset) bool) {
		for _, name := range b.names {
			if !yield(name, b.sheets[name]) {
				return
			}
		}
	}
}

func (b *Book) String() string {
	return fmt.Sprintf("Excel file with %d sheets. Sheets: %s", len(b.names), strings.Join(b.names, ", "))
}

// Write writes all sheets to w, with bold headers, and closes w.
func (b *Book) Write(w Writer) error {
	err := b.write(w)
	if closeErr := w.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func (b *Book) write(w Writer) error {
	for name, ds := range b.All() {
		if b.index[name] {
			ds = ds.WithIndex()
		}
		cols := make([]Column, ds.Width())
		for i, c := range ds.columns {
			cols[i].Name = c
			cols[i].Header.FontBold = true
		}
		sheet, err := w.NewSheet(name, cols)
		if err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
		for i, row := range ds.Records() {
			if err := sheet.AppendRow(row...); err != nil {
				return errors.Join(fmt.Errorf("sheet %q row %d: %w", name, i+1, err), sheet.Close())
			}
		}
		if err := sheet.Close(); err != nil {
			return fmt.Errorf("sheet %q: %w", name, err)
		}
	}
	return nil
}
