// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package xls reads legacy BIFF (.xls) workbooks.
package xls

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/UNO-SOFT/xlutil"
	"github.com/extrame/xls"
)

// DefaultCharset is used for byte strings of workbooks without a code page.
const DefaultCharset = "utf-8"

// ReadFile reads all sheets of the .xls file at path into a Book.
func ReadFile(path, charset string, headers bool) (*xlutil.Book, error) {
	if charset == "" {
		charset = DefaultCharset
	}
	wb, err := xls.Open(path, charset)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", xlutil.ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("open %s: %w: %w", path, xlutil.ErrCorruptWorkbook, err)
	}
	b := xlutil.NewBook()
	for i := 0; i < wb.NumSheets(); i++ {
		sheet := wb.GetSheet(i)
		if sheet == nil {
			continue
		}
		if err := b.Set(sheet.Name, xlutil.DatasetFromStrings(sheetRows(sheet), headers)); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func sheetRows(sheet *xls.WorkSheet) [][]string {
	if sheet.MaxRow == 0 && sheet.Row(0) == nil {
		return nil
	}
	rows := make([][]string, int(sheet.MaxRow)+1)
	for i := range rows {
		row := sheet.Row(i)
		if row == nil {
			continue
		}
		values := make([]string, row.LastCol())
		for j := range values {
			values[j] = row.Col(j)
		}
		rows[i] = values
	}
	return rows
}
