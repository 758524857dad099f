package reader

import (
	"fmt"
	"io"

	"github.com/extrame/xls"

	"github.com/cleared-dev/statements/internal/model"
)

// XLSReader reads the first sheet of a legacy BIFF workbook.
type XLSReader struct{}

// Format returns the reader name.
func (x *XLSReader) Format() string { return "xls" }

// Grid decodes the first sheet.
func (x *XLSReader) Grid(r io.ReadSeeker) (g Grid, err error) {
	// The BIFF decoder panics on some truncated files.
	defer func() {
		if p := recover(); p != nil {
			g, err = Grid{}, fmt.Errorf("%w: decoding xls: %v", ErrInvalidFile, p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return Grid{}, fmt.Errorf("%w: opening xls: %v", ErrInvalidFile, err)
	}
	if wb.NumSheets() == 0 {
		return Grid{}, fmt.Errorf("%w: workbook has no sheets", ErrInvalidFile)
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return Grid{}, fmt.Errorf("%w: could not read first sheet", ErrInvalidFile)
	}

	var cells [][]model.Cell
	for i := 0; i <= int(sheet.MaxRow); i++ {
		row := sheet.Row(i)
		if row == nil {
			cells = append(cells, nil)
			continue
		}
		out := make([]model.Cell, row.LastCol())
		for j := 0; j < row.LastCol(); j++ {
			out[j] = typedCell(row.Col(j))
		}
		cells = append(cells, out)
	}
	return Grid{Name: sheet.Name, Cells: cells}, nil
}
