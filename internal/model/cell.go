package model

import (
	"strconv"
	"strings"
	"time"
)

// CellKind tags the variant held by a Cell.
type CellKind int

const (
	CellEmpty CellKind = iota
	CellTime
	CellNumber
	CellString
)

// Cell is one spreadsheet value as produced by a tabular reader.
type Cell struct {
	Kind   CellKind
	Time   time.Time // CellTime
	Number float64   // CellNumber
	Text   string    // CellString
}

// TimeCell wraps a native date value.
func TimeCell(t time.Time) Cell { return Cell{Kind: CellTime, Time: t} }

// NumberCell wraps a numeric value (amounts, date serials, day fractions).
func NumberCell(f float64) Cell { return Cell{Kind: CellNumber, Number: f} }

// StringCell wraps a text value.
func StringCell(s string) Cell { return Cell{Kind: CellString, Text: s} }

// IsEmpty reports whether the cell carries no usable value.
// Whitespace-only strings count as empty.
func (c Cell) IsEmpty() bool {
	switch c.Kind {
	case CellEmpty:
		return true
	case CellString:
		return strings.TrimSpace(c.Text) == ""
	}
	return false
}

// String renders the cell as text regardless of kind.
func (c Cell) String() string {
	switch c.Kind {
	case CellTime:
		return c.Time.Format("2006-01-02 15:04:05")
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	case CellString:
		return c.Text
	}
	return ""
}

// Field is one header/value pair of a RawRow.
type Field struct {
	Header string
	Value  Cell
}

// RawRow is one statement line below the header row, in column order.
type RawRow struct {
	Index  int // zero-based position among data rows
	Fields []Field
}

// Headers returns the row's header names in column order.
func (r RawRow) Headers() []string {
	out := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		out[i] = f.Header
	}
	return out
}
