// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"errors"
	"fmt"

	"github.com/UNO-SOFT/xlutil"
	"github.com/xuri/excelize/v2"
)

// ReadSheet reads the used area of the named sheet into a Dataset,
// taking the first row as column names if headers is set.
func (wb *Workbook) ReadSheet(name string, headers bool) (*xlutil.Dataset, error) {
	rows, err := wb.rows(name)
	if err != nil {
		return nil, err
	}
	return xlutil.DatasetFromStrings(rows, headers), nil
}

// ReadRange reads the rectangle given as "A1:C9" of the named sheet into a Dataset.
func (wb *Workbook) ReadRange(name, ref string, headers bool) (*xlutil.Dataset, error) {
	topLeft, bottomRight, err := xlutil.ParseRange(ref)
	if err != nil {
		return nil, err
	}
	rows, err := wb.rows(name)
	if err != nil {
		return nil, err
	}
	c1, c2 := topLeft.Col(), bottomRight.Col()
	width := c2 - c1 + 1
	out := make([][]string, 0, bottomRight.Row-topLeft.Row+1)
	for r := topLeft.Row; r <= bottomRight.Row; r++ {
		row := make([]string, width)
		if r-1 < len(rows) {
			src := rows[r-1]
			for c := c1; c <= c2 && c-1 < len(src); c++ {
				row[c-c1] = src[c-1]
			}
		}
		out = append(out, row)
	}
	return xlutil.DatasetFromStrings(out, headers), nil
}

// ReadBook reads every sheet into a Book, in workbook order.
func (wb *Workbook) ReadBook(headers bool) (*xlutil.Book, error) {
	b := xlutil.NewBook()
	for _, name := range wb.SheetNames() {
		ds, err := wb.ReadSheet(name, headers)
		if err != nil {
			return nil, err
		}
		if err := b.Set(name, ds); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// ReadFile reads all sheets of the .xlsx file at path.
func ReadFile(path string, headers bool) (*xlutil.Book, error) {
	wb, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer wb.Close()
	return wb.ReadBook(headers)
}

func (wb *Workbook) rows(name string) ([][]string, error) {
	rows, err := wb.f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		var notExist excelize.ErrSheetNotExist
		if errors.As(err, &notExist) {
			return nil, fmt.Errorf("%w: %q", xlutil.ErrSheetNotFound, name)
		}
		return nil, fmt.Errorf("sheet %q: %w", name, err)
	}
	return rows, nil
}
