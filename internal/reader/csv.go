package reader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/statements/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVReader reads delimited text exports. The delimiter is detected from
// the first non-blank line; all cells stay strings.
type CSVReader struct{}

// Format returns the reader name.
func (c *CSVReader) Format() string { return "csv" }

// Grid decodes the whole file.
func (c *CSVReader) Grid(r io.ReadSeeker) (Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Grid{}, fmt.Errorf("reading csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = detectDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Grid{}, fmt.Errorf("%w: reading csv: %v", ErrInvalidFile, err)
	}

	cells := make([][]model.Cell, len(records))
	for i, rec := range records {
		row := make([]model.Cell, len(rec))
		for j, v := range rec {
			if strings.TrimSpace(v) != "" {
				row[j] = model.StringCell(v)
			}
		}
		cells[i] = row
	}
	return Grid{Name: "csv", Cells: cells}, nil
}

// detectDelimiter picks whichever of ';', ',' and tab occurs most often on
// the first non-blank line. Comma wins ties.
func detectDelimiter(data []byte) rune {
	var line string
	for _, l := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(l) != "" {
			line = l
			break
		}
	}
	best, bestN := ',', strings.Count(line, ",")
	for _, d := range []rune{';', '\t'} {
		if n := strings.Count(line, string(d)); n > bestN {
			best, bestN = d, n
		}
	}
	return best
}
