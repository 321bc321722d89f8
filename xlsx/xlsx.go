// Copyright 2020, 2023, 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/UNO-SOFT/xlutil"
	"github.com/xuri/excelize/v2"
)

var _ = (xlutil.Writer)((*XLSXWriter)(nil))

type XLSXWriter struct {
	w      io.Writer
	xl     *excelize.File
	styles map[string]int
	sheets []string
	mu     sync.Mutex
}

type XLSXSheet struct {
	xl   *excelize.File
	Name string
	row  int64
	mu   sync.Mutex
}

// NewWriter returns a new xlutil.Writer.
//
// This writer allows concurrent writes to separate sheets.
//
// This writer collects everything in memory, so big sheets may impose problems.
func NewWriter(w io.Writer) *XLSXWriter {
	return &XLSXWriter{w: w, xl: excelize.NewFile()}
}

// SaveBook writes the Book into a new .xlsx file at path.
func SaveBook(b *xlutil.Book, path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := b.Write(NewWriter(fh)); err != nil {
		fh.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return fh.Close()
}

func (xlw *XLSXWriter) Close() error {
	if xlw == nil {
		return nil
	}
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xl, w := xlw.xl, xlw.w
	xlw.xl, xlw.w = nil, nil
	if xl == nil || w == nil {
		return nil
	}
	defer xl.Close()
	_, err := xl.WriteTo(w)
	return err
}

func (xlw *XLSXWriter) NewSheet(name string, columns []xlutil.Column) (xlutil.Sheet, error) {
	xlw.mu.Lock()
	defer xlw.mu.Unlock()
	xlw.sheets = append(xlw.sheets, name)
	if len(xlw.sheets) == 1 { // first
		if err := xlw.xl.SetSheetName("Sheet1", name); err != nil {
			return nil, err
		}
	} else if _, err := xlw.xl.NewSheet(name); err != nil {
		return nil, err
	}
	var hasHeader bool
	for i, c := range columns {
		col, err := xlutil.ColumnName(i + 1)
		if err != nil {
			return nil, err
		}
		if s := xlw.getStyle(c.Column); s != 0 {
			if err = xlw.xl.SetColStyle(name, col, s); err != nil {
				return nil, err
			}
		}
		if s := xlw.getStyle(c.Header); s != 0 {
			if err = xlw.xl.SetCellStyle(name, col+"1", col+"1", s); err != nil {
				return nil, err
			}
		}
		if c.Name != "" {
			hasHeader = true
			if err = xlw.xl.SetCellStr(name, col+"1", c.Name); err != nil {
				return nil, err
			}
		}
	}
	xls := &XLSXSheet{xl: xlw.xl, Name: name}
	if hasHeader {
		xls.row++
	}
	return xls, nil
}

func (xlw *XLSXWriter) getStyle(style xlutil.Style) int {
	if !style.FontBold && style.Format == "" {
		return 0
	}
	k := fmt.Sprintf("%t\t%s", style.FontBold, style.Format)
	s, ok := xlw.styles[k]
	if ok {
		return s
	}
	var st excelize.Style
	if style.FontBold {
		st.Font = &excelize.Font{Bold: true}
	}
	if style.Format != "" {
		st.CustomNumFmt = &style.Format
	}
	s, err := xlw.xl.NewStyle(&st)
	if err != nil {
		panic(err)
	}
	if xlw.styles == nil {
		xlw.styles = make(map[string]int)
	}
	xlw.styles[k] = s
	return s
}

func (xls *XLSXSheet) Close() error { return nil }
func (xls *XLSXSheet) AppendRow(values ...any) error {
	xls.mu.Lock()
	defer xls.mu.Unlock()
	if xls.row >= xlutil.MaxRows {
		return xlutil.ErrTooManyRows
	}
	xls.row++
	for i, v := range values {
		axis, err := xlutil.CellName(i+1, int(xls.row))
		if err != nil {
			return fmt.Errorf("%d/%d: %w", i, int(xls.row), err)
		}
		if v = xlutil.Normalize(v); v == nil {
			continue
		}
		if err := setCellValue(xls.xl, xls.Name, axis, v); err != nil {
			return err
		}
	}
	return nil
}

// setCellValue writes an already normalized value; nil empties the cell.
func setCellValue(xl *excelize.File, sheet, axis string, v any) error {
	var err error
	switch x := v.(type) {
	case nil:
		err = xl.SetCellValue(sheet, axis, nil)
	case time.Time:
		err = xl.SetCellStr(sheet, axis, x.Format("2006-01-02"))
	case float64:
		err = xl.SetCellFloat(sheet, axis, x, -1, 64)
	case xlutil.Number:
		if f, perr := strconv.ParseFloat(string(x), 64); perr == nil {
			err = xl.SetCellFloat(sheet, axis, f, -1, 64)
		} else {
			err = xl.SetCellStr(sheet, axis, string(x))
		}
	case string:
		err = xl.SetCellStr(sheet, axis, x)
	case []byte:
		err = xl.SetCellStr(sheet, axis, string(x))
	case fmt.Stringer:
		err = xl.SetCellStr(sheet, axis, x.String())
	default:
		err = xl.SetCellValue(sheet, axis, v)
	}
	if err != nil {
		return fmt.Errorf("%s[%s]: %w", sheet, axis, err)
	}
	return nil
}
