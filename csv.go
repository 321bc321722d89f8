package xlutil

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

var EncName = "utf-8"

func init() {
	EncName = os.Getenv("LANG")
	if i := strings.IndexByte(EncName, '.'); i >= 0 {
		EncName = strings.ToLower(EncName[i+1:])
	}
	if EncName == "" {
		EncName = "utf-8"
	}
}

func GetEncoding(encName string) (encoding.Encoding, error) {
	encName = strings.ToLower(encName)
	if encName == "" || encName == "utf-8" || encName == "utf8" {
		return nil, nil
	}
	enc, err := htmlindex.Get(encName)
	if err != nil {
		err = fmt.Errorf("%q: %w", encName, err)
	}
	return enc, err
}

type csvReadCloser struct {
	*csv.Reader
	io.Closer
}

type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var errs []error
	for i := len(mc) - 1; i >= 0; i-- {
		errs = append(errs, mc[i].Close())
	}
	return errors.Join(errs...)
}

// OpenCsv opens fn ("" or "-" is stdin) for reading as CSV.
//
// Files ending with .gz or .zst are decompressed, then decoded from encName.
// The separator is the first character of the input that cannot be part of a field.
func OpenCsv(fn, encName string) (csvReadCloser, error) {
	var enc encoding.Encoding
	if encName != "" {
		var err error
		if enc, err = GetEncoding(encName); err != nil {
			return csvReadCloser{}, err
		}
	}
	fh := os.Stdin
	if !(fn == "" || fn == "-") {
		var err error
		if fh, err = os.Open(fn); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				err = fmt.Errorf("%w: %w", ErrFileNotFound, err)
			}
			return csvReadCloser{}, err
		}
	}
	closers := multiCloser{fh}
	r := io.Reader(fh)
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".gz":
		zr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return csvReadCloser{}, fmt.Errorf("%s: %w", fn, err)
		}
		r, closers = zr, append(closers, zr)
	case ".zst":
		zr, err := zstd.NewReader(fh)
		if err != nil {
			fh.Close()
			return csvReadCloser{}, fmt.Errorf("%s: %w", fn, err)
		}
		rc := zr.IOReadCloser()
		r, closers = rc, append(closers, rc)
	}
	if enc != nil {
		r = enc.NewDecoder().Reader(r)
	}
	br := bufio.NewReaderSize(r, 1<<20)
	b, err := br.Peek(1024)
	if err != nil && len(b) == 0 {
		closers.Close()
		return csvReadCloser{}, err
	}
	sep := rune(',')
	for _, r := range string(b) {
		if r == '"' || r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) {
			continue
		}
		sep = r
		break
	}

	cr := csv.NewReader(br)
	cr.ReuseRecord = true
	cr.Comma = sep
	cr.FieldsPerRecord = -1
	return csvReadCloser{cr, closers}, nil
}

// ReadCsv reads the whole CSV file into a Dataset.
// With headers, the first record names the columns, otherwise they are named 0, 1, ...
// Short records are padded with nulls.
func ReadCsv(fn, encName string, headers bool) (*Dataset, error) {
	cr, err := OpenCsv(fn, encName)
	if err != nil {
		return nil, err
	}
	defer cr.Close()
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return DatasetFromStrings(records, headers), nil
}

// DatasetFromStrings builds a Dataset from text rows, typing each cell with ParseValue.
func DatasetFromStrings(rows [][]string, headers bool) *Dataset {
	var width int
	for _, row := range rows {
		width = max(width, len(row))
	}
	ds := &Dataset{columns: make([]string, width)}
	if headers && len(rows) != 0 {
		copy(ds.columns, rows[0])
		rows = rows[1:]
	} else {
		for i := range ds.columns {
			ds.columns[i] = strconv.Itoa(i)
		}
	}
	ds.rows = make([][]any, 0, len(rows))
	for _, row := range rows {
		values := make([]any, width)
		for i, s := range row {
			values[i] = ParseValue(s)
		}
		ds.rows = append(ds.rows, values)
	}
	return ds
}
