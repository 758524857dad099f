package reader

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/statements/internal/model"
)

// XLSXReader reads the first sheet of an Office Open XML workbook. Raw
// cell values are used so date cells arrive as day serials.
type XLSXReader struct{}

// Format returns the reader name.
func (x *XLSXReader) Format() string { return "xlsx" }

// Grid decodes the first sheet.
func (x *XLSXReader) Grid(r io.ReadSeeker) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Grid{}, fmt.Errorf("%w: opening xlsx: %v", ErrInvalidFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return Grid{}, fmt.Errorf("%w: workbook has no sheets", ErrInvalidFile)
	}
	name := sheets[0]

	rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
	if err != nil {
		return Grid{}, fmt.Errorf("%w: reading sheet %q: %v", ErrInvalidFile, name, err)
	}

	cells := make([][]model.Cell, len(rows))
	for i, row := range rows {
		out := make([]model.Cell, len(row))
		for j, v := range row {
			out[j] = typedCell(v)
		}
		cells[i] = out
	}
	return Grid{Name: name, Cells: cells}, nil
}
