// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

// Package source loads tabular files into an xlutil.Book, choosing the reader
// by the file's extension.
package source

import (
	"path/filepath"
	"strings"

	"github.com/UNO-SOFT/xlutil"
	"github.com/UNO-SOFT/xlutil/xls"
	"github.com/UNO-SOFT/xlutil/xlsx"
)

// Options for Open.
type Options struct {
	// Charset of CSV and .xls byte strings; empty means UTF-8.
	Charset string
	// Headers takes the first row of each sheet as column names.
	Headers bool
}

// Kind is a recognized source format.
type Kind string

const (
	KindXLSX Kind = "xlsx"
	KindXLS  Kind = "xls"
	KindCSV  Kind = "csv"
)

// Sniff returns the format of path by its extension,
// ignoring a trailing .gz or .zst on CSV files.
func Sniff(path string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return KindXLSX, nil
	case ".xls":
		return KindXLS, nil
	case ".csv", ".tsv", ".txt":
		return KindCSV, nil
	case ".gz", ".zst":
		switch strings.ToLower(filepath.Ext(strings.TrimSuffix(path, filepath.Ext(path)))) {
		case ".csv", ".tsv", ".txt":
			return KindCSV, nil
		}
	}
	return "", &xlutil.FileTypeError{Path: path, Ext: ext}
}

// Open reads the file at path into a Book.
// A CSV file becomes a single sheet named after the file.
func Open(path string, opts Options) (*xlutil.Book, error) {
	kind, err := Sniff(path)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindXLSX:
		return xlsx.ReadFile(path, opts.Headers)
	case KindXLS:
		return xls.ReadFile(path, opts.Charset, opts.Headers)
	}
	ds, err := xlutil.ReadCsv(path, opts.Charset, opts.Headers)
	if err != nil {
		return nil, err
	}
	b := xlutil.NewBook()
	if err := b.Set(SheetName(path), ds); err != nil {
		return nil, err
	}
	return b, nil
}

// SheetName is the sheet name a CSV file gets: its base name without
// the compression and format extensions.
func SheetName(path string) string {
	name := filepath.Base(path)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz", ".zst":
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}
