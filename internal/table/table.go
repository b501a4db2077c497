// Package table reads connectome workbooks as rows of raw cell strings.
//
// A workbook is a fixed sequence of sheets. Each sheet is returned as a slice
// of rows; each row is a slice of cell strings with no type interpretation.
package table

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workbook is a read-only view of a spreadsheet.
type Workbook interface {
	// SheetCount returns the number of sheets in the workbook.
	SheetCount() int

	// Rows returns every row of the sheet at the given 0-based position,
	// header row included.
	Rows(sheet int) ([][]string, error)

	// Close releases any underlying file handle.
	Close() error
}

// Open opens a workbook, picking the reader from the path: a directory is
// read as CSV sheets, otherwise the file extension selects xlsx or xls.
func Open(path string) (Workbook, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return OpenCSVDir(path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".xlsx", ".xlsm":
		return OpenXLSX(path)
	case ".xls":
		return OpenXLS(path)
	default:
		return nil, fmt.Errorf("unsupported workbook extension %q (use .xls, .xlsx or a CSV directory)", ext)
	}
}

// Cell returns the trimmed cell at col, or "" when the row is shorter.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Blank reports whether every cell of the row is empty after trimming.
func Blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func checkSheet(n, sheet int) error {
	if sheet < 0 || sheet >= n {
		return fmt.Errorf("sheet %d out of range (workbook has %d)", sheet, n)
	}
	return nil
}
