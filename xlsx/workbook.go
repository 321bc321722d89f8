// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/UNO-SOFT/xlutil"
	"github.com/xuri/excelize/v2"
)

var _ = (xlutil.Worksheet)((*Sheet)(nil))

// Workbook is an opened .xlsx workbook.
//
// A Workbook is not safe for concurrent use; serialize pastes per workbook.
type Workbook struct {
	f      *excelize.File
	logger *slog.Logger
	path   string
}

// Option configures a Workbook.
type Option func(*Workbook)

// WithLogger sets the logger used for debug messages.
func WithLogger(logger *slog.Logger) Option {
	return func(wb *Workbook) { wb.logger = logger }
}

func newWorkbook(f *excelize.File, path string, opts []Option) *Workbook {
	wb := &Workbook{f: f, path: path}
	for _, o := range opts {
		o(wb)
	}
	if wb.logger == nil {
		wb.logger = slog.Default()
	}
	return wb
}

// New returns a new workbook with one empty sheet, "Sheet1".
func New(opts ...Option) *Workbook {
	return newWorkbook(excelize.NewFile(), "", opts)
}

// Open opens the workbook at path.
func Open(path string, opts ...Option) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", xlutil.ErrFileNotFound, err)
		}
		return nil, fmt.Errorf("open %s: %w: %w", path, xlutil.ErrCorruptWorkbook, err)
	}
	wb := newWorkbook(f, path, opts)
	wb.logger.Debug("opened", "path", path, "sheets", f.GetSheetList())
	return wb, nil
}

// OpenReader reads a workbook from r.
func OpenReader(r io.Reader, opts ...Option) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", xlutil.ErrCorruptWorkbook, err)
	}
	return newWorkbook(f, "", opts), nil
}

// File returns the underlying excelize file.
func (wb *Workbook) File() *excelize.File { return wb.f }

// SheetNames returns the sheet names in workbook order.
func (wb *Workbook) SheetNames() []string { return wb.f.GetSheetList() }

// Sheet returns the named sheet.
func (wb *Workbook) Sheet(name string) (*Sheet, error) {
	if idx, err := wb.f.GetSheetIndex(name); err != nil {
		return nil, err
	} else if idx < 0 {
		return nil, fmt.Errorf("%w: %q", xlutil.ErrSheetNotFound, name)
	}
	return &Sheet{wb: wb, name: name}, nil
}

// CreateSheet appends a new empty sheet.
func (wb *Workbook) CreateSheet(name string) (*Sheet, error) {
	if idx, err := wb.f.GetSheetIndex(name); err != nil {
		return nil, err
	} else if idx >= 0 {
		return nil, fmt.Errorf("%w: %q", xlutil.ErrSheetExists, name)
	}
	if _, err := wb.f.NewSheet(name); err != nil {
		return nil, fmt.Errorf("create sheet %q: %w", name, err)
	}
	wb.logger.Debug("sheet created", "sheet", name)
	return &Sheet{wb: wb, name: name}, nil
}

// RemoveSheet removes the named sheet. The last sheet of a workbook cannot be removed.
func (wb *Workbook) RemoveSheet(name string) error {
	if _, err := wb.Sheet(name); err != nil {
		return err
	}
	if err := wb.f.DeleteSheet(name); err != nil {
		return fmt.Errorf("remove sheet %q: %w", name, err)
	}
	if slices.Contains(wb.f.GetSheetList(), name) {
		return fmt.Errorf("remove sheet %q: a workbook needs at least one sheet", name)
	}
	wb.logger.Debug("sheet removed", "sheet", name)
	return nil
}

// Tables returns the names of all tables, sheet by sheet.
func (wb *Workbook) Tables() ([]string, error) {
	var names []string
	for _, sheet := range wb.f.GetSheetList() {
		tables, err := wb.f.GetTables(sheet)
		if err != nil {
			return names, fmt.Errorf("sheet %q: %w", sheet, err)
		}
		for _, t := range tables {
			names = append(names, t.Name)
		}
	}
	return names, nil
}

// Paste pastes ds onto the named sheet, see xlutil.Paste.
func (wb *Workbook) Paste(sheet string, ds *xlutil.Dataset, tableName, at string, opts xlutil.PasteOptions) (xlutil.Region, error) {
	ws, err := wb.Sheet(sheet)
	if err != nil {
		return xlutil.Region{}, err
	}
	region, err := xlutil.Paste(ws, ds, tableName, at, opts)
	if err != nil {
		return region, err
	}
	wb.logger.Debug("pasted", "sheet", sheet, "table", tableName, "range", region.Ref(),
		"overwrite", opts.Overwrite, "index", opts.Index)
	return region, nil
}

// Save saves the workbook to the path it was opened from.
func (wb *Workbook) Save() error {
	if wb.path == "" {
		return errors.New("workbook has no path, use SaveAs")
	}
	return wb.SaveAs(wb.path)
}

// SaveAs saves the workbook to path, which becomes the workbook's path.
func (wb *Workbook) SaveAs(path string) error {
	if err := wb.f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	wb.path = path
	wb.logger.Debug("saved", "path", path)
	return nil
}

// WriteTo writes the workbook to w.
func (wb *Workbook) WriteTo(w io.Writer) (int64, error) { return wb.f.WriteTo(w) }

func (wb *Workbook) Close() error { return wb.f.Close() }

// Sheet is a worksheet of a Workbook.
type Sheet struct {
	wb   *Workbook
	name string
}

func (s *Sheet) Name() string { return s.name }

// Cell returns the raw value of the cell, ignoring its number format.
// A cell holding only a formula returns the formula, so it does not count as empty.
func (s *Sheet) Cell(axis string) (string, error) {
	v, err := s.wb.f.GetCellValue(s.name, axis, excelize.Options{RawCellValue: true})
	if err != nil || v != "" {
		return v, err
	}
	formula, err := s.wb.f.GetCellFormula(s.name, axis)
	if err != nil || formula == "" {
		return "", err
	}
	return "=" + formula, nil
}

// SetCell sets the value of the cell; nil empties it.
func (s *Sheet) SetCell(axis string, value any) error {
	return setCellValue(s.wb.f, s.name, axis, xlutil.Normalize(value))
}

func (s *Sheet) Tables() ([]string, error) { return s.wb.Tables() }

// AddTable registers the region as a table on this sheet.
func (s *Sheet) AddTable(r xlutil.Region) error {
	names, err := s.wb.Tables()
	if err != nil {
		return err
	}
	if slices.Contains(names, r.Name) {
		return &xlutil.TableNameError{Name: r.Name}
	}
	rowStripes := r.Style.RowStripes
	if err := s.wb.f.AddTable(s.name, &excelize.Table{
		Range:             r.Ref(),
		Name:              r.Name,
		StyleName:         r.Style.Name,
		ShowColumnStripes: r.Style.ColumnStripes,
		ShowFirstColumn:   r.Style.FirstColumn,
		ShowLastColumn:    r.Style.LastColumn,
		ShowRowStripes:    &rowStripes,
	}); err != nil {
		return fmt.Errorf("%s: %w", s.name, err)
	}
	return nil
}
