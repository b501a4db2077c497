package table

// Memory is a Workbook held entirely in memory.
type Memory struct {
	Sheets [][][]string
}

// NewMemory builds an in-memory workbook from sheets in order.
func NewMemory(sheets ...[][]string) *Memory {
	return &Memory{Sheets: sheets}
}

func (m *Memory) SheetCount() int { return len(m.Sheets) }

func (m *Memory) Rows(sheet int) ([][]string, error) {
	if err := checkSheet(len(m.Sheets), sheet); err != nil {
		return nil, err
	}
	return m.Sheets[sheet], nil
}

func (m *Memory) Close() error { return nil }
