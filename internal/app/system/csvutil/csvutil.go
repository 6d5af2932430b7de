// Package csvutil writes typed rows as CSV for spreadsheet downloads.
package csvutil

import (
	"encoding/csv"
	"io"
	"strings"
)

// MaxRows caps one export.
const MaxRows = 20000

// Column is one CSV column: a header and how to read it from a row.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// Write emits a header line then one line per row.
func Write[T any](w io.Writer, cols []Column[T], rows []T) error {
	cw := csv.NewWriter(w)

	rec := make([]string, len(cols))
	for i, c := range cols {
		rec[i] = c.Header
	}
	if err := cw.Write(rec); err != nil {
		return err
	}
	for _, row := range rows {
		for i, c := range cols {
			rec[i] = Cell(c.Value(row))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Cell neutralizes values a spreadsheet would run as a formula by
// prefixing them with a quote. Public visitors write most of these fields.
func Cell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return strings.TrimSpace(s)
}
