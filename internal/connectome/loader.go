// Package connectome loads the three-sheet connectome workbook into rows.
package connectome

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/nvandessel/bionet/internal/models"
	"github.com/nvandessel/bionet/internal/table"
)

// Sheet positions within the workbook.
const (
	SheetConnections = 0
	SheetMotor       = 1
	SheetSensory     = 2

	numSheets = 3
)

// Column positions on the connections sheet.
const (
	colOrigin      = 0
	colTarget      = 1
	colType        = 2
	colConnections = 3
	colTransmitter = 4
)

// Column positions on the motor sheet, which has no type column.
const (
	motorColConnections = 2
	motorColTransmitter = 3
)

var errNegative = errors.New("must not be negative")

// LoadFile opens the workbook at path and loads it.
func LoadFile(path string) ([]models.Row, error) {
	wb, err := table.Open(path)
	if err != nil {
		return nil, &SourceReadError{Path: path, Err: err}
	}
	defer wb.Close()

	rows, err := Load(wb)
	var sre *SourceReadError
	if errors.As(err, &sre) && sre.Path == "" {
		sre.Path = path
	}
	return rows, err
}

// Load reads the connections, motor and sensory sheets of wb.
//
// Connection rows come first in sheet order, followed by motor rows. The
// sensory sheet adds no rows; it sets Sensory on every row whose origin it
// lists.
func Load(wb table.Workbook) ([]models.Row, error) {
	if n := wb.SheetCount(); n < numSheets {
		return nil, &SourceReadError{Err: fmt.Errorf("workbook has %d sheets, need %d", n, numSheets)}
	}

	var rows []models.Row

	sheet, err := readSheet(wb, SheetConnections)
	if err != nil {
		return nil, err
	}
	for _, r := range sheet {
		connections, err := parseConnections(SheetConnections, r.num, colConnections, r.cells)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.Row{
			Origin:      table.Cell(r.cells, colOrigin),
			Target:      table.Cell(r.cells, colTarget),
			Type:        table.Cell(r.cells, colType),
			Connections: connections,
			Transmitter: table.Cell(r.cells, colTransmitter),
		})
	}

	sheet, err = readSheet(wb, SheetMotor)
	if err != nil {
		return nil, err
	}
	for _, r := range sheet {
		connections, err := parseConnections(SheetMotor, r.num, motorColConnections, r.cells)
		if err != nil {
			return nil, err
		}
		rows = append(rows, models.Row{
			Origin:      table.Cell(r.cells, colOrigin),
			Target:      table.Cell(r.cells, colTarget),
			Type:        models.MuscleType,
			Connections: connections,
			Transmitter: table.Cell(r.cells, motorColTransmitter),
			Motor:       true,
		})
	}

	sheet, err = readSheet(wb, SheetSensory)
	if err != nil {
		return nil, err
	}
	for _, r := range sheet {
		origin := table.Cell(r.cells, colOrigin)
		for j := range rows {
			if rows[j].Origin == origin {
				rows[j].Sensory = true
			}
		}
	}

	return rows, nil
}

// sheetRow is a data row with its 0-based position in the sheet.
type sheetRow struct {
	num   int
	cells []string
}

// readSheet returns the data rows of a sheet: the header is dropped and
// blank rows are skipped.
func readSheet(wb table.Workbook, sheet int) ([]sheetRow, error) {
	all, err := wb.Rows(sheet)
	if err != nil {
		return nil, &SourceReadError{Err: err}
	}

	var data []sheetRow
	for i := 1; i < len(all); i++ {
		if table.Blank(all[i]) {
			continue
		}
		data = append(data, sheetRow{num: i, cells: all[i]})
	}
	return data, nil
}

// parseConnections reads the connection count cell. Spreadsheet numeric
// cells may render as "2.0"; integral decimals are accepted.
func parseConnections(sheet, row, col int, cells []string) (int, error) {
	raw := table.Cell(cells, col)
	malformed := func(err error) error {
		return &MalformedRowError{Sheet: sheet, Row: row, Column: col, Value: raw, Err: err}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != math.Trunc(f) || math.IsInf(f, 0) || f > math.MaxInt32 {
			return 0, malformed(err)
		}
		n = int(f)
	}
	if n < 0 {
		return 0, malformed(errNegative)
	}
	return n, nil
}
