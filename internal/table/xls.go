package table

import (
	"fmt"
	"io"

	"github.com/extrame/xls"
)

// XLS reads legacy BIFF8 (.xls) workbooks, the format the connectome
// tables are published in.
type XLS struct {
	book   *xls.WorkBook
	closer io.Closer
}

// OpenXLS opens an .xls workbook.
func OpenXLS(path string) (*XLS, error) {
	book, closer, err := xls.OpenWithCloser(path, "utf-8")
	if err != nil {
		return nil, fmt.Errorf("open xls: %w", err)
	}
	return &XLS{book: book, closer: closer}, nil
}

func (x *XLS) SheetCount() int { return x.book.NumSheets() }

func (x *XLS) Rows(sheet int) ([][]string, error) {
	if err := checkSheet(x.book.NumSheets(), sheet); err != nil {
		return nil, err
	}
	ws := x.book.GetSheet(sheet)
	if ws == nil {
		return nil, fmt.Errorf("sheet %d is unreadable", sheet)
	}

	rows := make([][]string, 0, int(ws.MaxRow)+1)
	for i := 0; i <= int(ws.MaxRow); i++ {
		r := ws.Row(i)
		if r == nil {
			rows = append(rows, nil)
			continue
		}
		cells := make([]string, r.LastCol())
		for c := range cells {
			cells[c] = r.Col(c)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func (x *XLS) Close() error {
	if x.closer == nil {
		return nil
	}
	return x.closer.Close()
}
