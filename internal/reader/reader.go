// Package reader turns statement files into rows keyed by header name.
package reader

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

var (
	// ErrInvalidFile means the container could not be decoded at all.
	ErrInvalidFile = errors.New("invalid statement file")
	// ErrHeaderRowOutOfRange means the sheet has fewer rows than the header offset.
	ErrHeaderRowOutOfRange = errors.New("header row out of range")
	// ErrUnsupportedFormat means no reader is registered for the file extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// Grid is a decoded sheet before header detection.
type Grid struct {
	Name  string
	Cells [][]model.Cell
}

// Sheet is a decoded sheet split into data rows.
type Sheet struct {
	Name    string
	Headers []string
	Rows    []model.RawRow
}

// Reader decodes one container format into a Grid.
type Reader interface {
	Grid(r io.ReadSeeker) (Grid, error)
	Format() string
}

// Registry maps file extensions to readers.
type Registry struct {
	readers map[string]Reader
}

// NewRegistry creates an empty reader registry.
func NewRegistry() *Registry {
	return &Registry{readers: make(map[string]Reader)}
}

// Register adds a reader for an extension such as ".csv". Panics on duplicate extension.
func (r *Registry) Register(ext string, rd Reader) {
	key := strings.ToLower(ext)
	if _, ok := r.readers[key]; ok {
		panic("duplicate reader extension: " + key)
	}
	r.readers[key] = rd
}

// ForFile returns the reader for a file name's extension.
func (r *Registry) ForFile(name string) (Reader, error) {
	ext := strings.ToLower(filepath.Ext(name))
	rd, ok := r.readers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return rd, nil
}

// DefaultRegistry returns a registry with the csv, xlsx and xls readers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(".csv", &CSVReader{})
	r.Register(".txt", &CSVReader{})
	r.Register(".xlsx", &XLSXReader{})
	r.Register(".xls", &XLSReader{})
	return r
}

// Read decodes a named file and splits it at headerRow.
func (r *Registry) Read(name string, src io.ReadSeeker, headerRow int) (Sheet, error) {
	rd, err := r.ForFile(name)
	if err != nil {
		return Sheet{}, err
	}
	g, err := rd.Grid(src)
	if err != nil {
		return Sheet{}, err
	}
	return Split(g, headerRow)
}

// Split uses row headerRow of g as the header and everything below it as
// data. Rows above the header are statement metadata and are dropped, as
// are fully blank data rows.
func Split(g Grid, headerRow int) (Sheet, error) {
	if headerRow < 0 || headerRow >= len(g.Cells) {
		return Sheet{}, fmt.Errorf("%w: row %d of %d", ErrHeaderRowOutOfRange, headerRow, len(g.Cells))
	}

	headers := headerNames(g.Cells[headerRow])
	sheet := Sheet{Name: g.Name, Headers: headers, Rows: []model.RawRow{}}
	for _, cells := range g.Cells[headerRow+1:] {
		if blank(cells) {
			continue
		}
		row := model.RawRow{Index: len(sheet.Rows), Fields: make([]model.Field, len(headers))}
		for i, h := range headers {
			var v model.Cell
			if i < len(cells) {
				v = cells[i]
			}
			row.Fields[i] = model.Field{Header: h, Value: v}
		}
		sheet.Rows = append(sheet.Rows, row)
	}
	return sheet, nil
}

// headerNames names blank header cells __EMPTY, __EMPTY_1, ... and
// suffixes repeated names with _1, _2, ...
func headerNames(cells []model.Cell) []string {
	names := make([]string, len(cells))
	seen := make(map[string]int, len(cells))
	for i, c := range cells {
		name := strings.TrimSpace(c.String())
		if name == "" {
			name = "__EMPTY"
		}
		if n, ok := seen[name]; ok {
			seen[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[i] = name
	}
	return names
}

func blank(cells []model.Cell) bool {
	for _, c := range cells {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// Preview renders the first limit rows of g as text, without header
// detection. A limit of zero or less returns every row.
func Preview(g Grid, limit int) [][]string {
	n := len(g.Cells)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(g.Cells[i]))
		for j, c := range g.Cells[i] {
			row[j] = c.String()
		}
		out[i] = row
	}
	return out
}

// typedCell turns spreadsheet text into a number cell when it reads as a
// finite number, so date serials and amounts keep their numeric form.
func typedCell(s string) model.Cell {
	t := strings.TrimSpace(s)
	if t == "" {
		return model.Cell{}
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && !isSpecial(t) {
		return model.NumberCell(f)
	}
	return model.StringCell(s)
}

// isSpecial rejects the words ParseFloat accepts but spreadsheets never mean as numbers.
func isSpecial(s string) bool {
	l := strings.ToLower(strings.TrimLeft(s, "+-"))
	return strings.HasPrefix(l, "inf") || l == "nan" || strings.HasPrefix(l, "0x")
}
