// Copyright 2026 Tamás Gulácsi.
//
// SPDX-License-Identifier: Apache-2.0

package xlutil

import (
	"fmt"
	"iter"
	"strconv"
	"strings"
)

const (
	// MaxCols is the number of columns in a worksheet (A..XFD).
	MaxCols = 16_384
	// MaxRows is the number of rows in a worksheet.
	MaxRows = 1_048_576

	maxColumnLetters = 3
)

// CellAddress is a parsed cell reference such as "B7".
type CellAddress struct {
	// Column is the uppercase column name (A..XFD).
	Column string
	// Row is 1-based.
	Row int
}

func (a CellAddress) String() string { return a.Column + strconv.Itoa(a.Row) }

// Col returns the 1-based column index of the address, 0 for an invalid column.
func (a CellAddress) Col() int {
	n, err := ColumnNumber(a.Column)
	if err != nil {
		return 0
	}
	return n
}

// ColumnName converts a 1-based column index to its letters (1 → A, 27 → AA).
//
// Column letters are bijective base-26: there is no digit for zero,
// so each step borrows one before taking the remainder.
func ColumnName(n int) (string, error) {
	if n < 1 || n > MaxCols {
		return "", &AddressError{Ref: strconv.Itoa(n), Reason: fmt.Sprintf("column index must be in [1, %d]", MaxCols)}
	}
	var buf [maxColumnLetters]byte
	i := len(buf)
	for n > 0 {
		n--
		i--
		buf[i] = 'A' + byte(n%26)
		n /= 26
	}
	return string(buf[i:]), nil
}

// ColumnNumber is the inverse of ColumnName. Lowercase letters are accepted.
func ColumnNumber(name string) (int, error) {
	if name == "" || len(name) > maxColumnLetters {
		return 0, &AddressError{Ref: name, Reason: "column must be 1 to 3 letters"}
	}
	var n int
	for i := 0; i < len(name); i++ {
		c := name[i]
		if 'a' <= c && c <= 'z' {
			c -= 'a' - 'A'
		}
		if c < 'A' || 'Z' < c {
			return 0, &AddressError{Ref: name, Reason: "column must be letters only"}
		}
		n = n*26 + int(c-'A'+1)
	}
	if n > MaxCols {
		return 0, &AddressError{Ref: name, Reason: "column beyond XFD"}
	}
	return n, nil
}

// CellName returns the reference of the 1-based (col, row) coordinate.
func CellName(col, row int) (string, error) {
	c, err := ColumnName(col)
	if err != nil {
		return "", err
	}
	if row < 1 || row > MaxRows {
		return "", &AddressError{Ref: c + strconv.Itoa(row), Reason: fmt.Sprintf("row must be in [1, %d]", MaxRows)}
	}
	return c + strconv.Itoa(row), nil
}

// Columns yields every column name from A to XFD, in order.
// The sequence can be ranged over any number of times.
func Columns() iter.Seq[string] {
	return func(yield func(string) bool) {
		for n := 1; n <= MaxCols; n++ {
			s, _ := ColumnName(n)
			if !yield(s) {
				return
			}
		}
	}
}

// Rows yields the row numbers 1..MaxRows.
func Rows() iter.Seq[int] {
	return func(yield func(int) bool) {
		for r := 1; r <= MaxRows; r++ {
			if !yield(r) {
				return
			}
		}
	}
}

// ColumnRange returns the names of n consecutive columns starting at the 1-based start.
func ColumnRange(start, n int) ([]string, error) {
	if start < 1 || start > MaxCols {
		return nil, &AddressError{Ref: strconv.Itoa(start), Reason: fmt.Sprintf("column index must be in [1, %d]", MaxCols)}
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: negative width %d", ErrColumnOverflow, n)
	}
	if avail := MaxCols - start + 1; n > avail {
		first, _ := ColumnName(start)
		return nil, fmt.Errorf("%w: %d columns from %s, only %d available", ErrColumnOverflow, n, first, avail)
	}
	names := make([]string, 0, n)
	for i := range n {
		s, _ := ColumnName(start + i)
		names = append(names, s)
	}
	return names, nil
}

// ParseCell parses a reference such as "A1" or "xfd1048576".
// The whole string must be a run of letters followed by a run of digits.
func ParseCell(ref string) (CellAddress, error) {
	i := 0
	for i < len(ref) && isLetter(ref[i]) {
		i++
	}
	j := i
	for j < len(ref) && '0' <= ref[j] && ref[j] <= '9' {
		j++
	}
	if i == 0 || j == i || j != len(ref) {
		return CellAddress{}, &AddressError{Ref: ref, Reason: "want column letters followed by row digits"}
	}
	if i > maxColumnLetters {
		return CellAddress{}, &AddressError{Ref: ref, Reason: "column must be 1 to 3 letters"}
	}
	column := strings.ToUpper(ref[:i])
	if _, err := ColumnNumber(column); err != nil {
		return CellAddress{}, &AddressError{Ref: ref, Reason: "column beyond XFD"}
	}
	row, err := strconv.Atoi(ref[i:])
	if err != nil || row < 1 || row > MaxRows {
		return CellAddress{}, &AddressError{Ref: ref, Reason: fmt.Sprintf("row must be in [1, %d]", MaxRows)}
	}
	return CellAddress{Column: column, Row: row}, nil
}

// ParseRange parses "A1:C9" into its top-left and bottom-right corners,
// whichever order the corners were given in.
func ParseRange(ref string) (topLeft, bottomRight CellAddress, err error) {
	from, to, ok := strings.Cut(ref, ":")
	if !ok {
		return topLeft, bottomRight, &AddressError{Ref: ref, Reason: "want a range like A1:C9"}
	}
	a, err := ParseCell(from)
	if err != nil {
		return topLeft, bottomRight, err
	}
	b, err := ParseCell(to)
	if err != nil {
		return topLeft, bottomRight, err
	}
	c1, c2 := a.Col(), b.Col()
	r1, r2 := a.Row, b.Row
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	left, _ := ColumnName(c1)
	right, _ := ColumnName(c2)
	return CellAddress{Column: left, Row: r1}, CellAddress{Column: right, Row: r2}, nil
}

func isLetter(c byte) bool { return ('A' <= c && c <= 'Z') || ('a' <= c && c <= 'z') }
