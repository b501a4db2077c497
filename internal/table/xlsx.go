package table

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSX reads Office Open XML workbooks.
type XLSX struct {
	file   *excelize.File
	sheets []string
}

// OpenXLSX opens an .xlsx workbook.
func OpenXLSX(path string) (*XLSX, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	return &XLSX{file: f, sheets: f.GetSheetList()}, nil
}

func (x *XLSX) SheetCount() int { return len(x.sheets) }

func (x *XLSX) Rows(sheet int) ([][]string, error) {
	if err := checkSheet(len(x.sheets), sheet); err != nil {
		return nil, err
	}
	rows, err := x.file.GetRows(x.sheets[sheet])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", x.sheets[sheet], err)
	}
	return rows, nil
}

func (x *XLSX) Close() error { return x.file.Close() }
