package table

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// CSVSheetNames are the files a CSV directory workbook is read from, in
// sheet order.
var CSVSheetNames = []string{"connections.csv", "motor.csv", "sensory.csv"}

// CSVDir reads a workbook exported as one CSV file per sheet.
type CSVDir struct {
	dir string
}

// OpenCSVDir opens a directory holding the CSVSheetNames files.
func OpenCSVDir(dir string) (*CSVDir, error) {
	for _, name := range CSVSheetNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return nil, fmt.Errorf("csv workbook: %w", err)
		}
	}
	return &CSVDir{dir: dir}, nil
}

func (c *CSVDir) SheetCount() int { return len(CSVSheetNames) }

func (c *CSVDir) Rows(sheet int) ([][]string, error) {
	if err := checkSheet(len(CSVSheetNames), sheet); err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(c.dir, CSVSheetNames[sheet]))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", CSVSheetNames[sheet], err)
	}
	return rows, nil
}

func (c *CSVDir) Close() error { return nil }
