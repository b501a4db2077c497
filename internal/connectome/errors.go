package connectome

import "fmt"

// SourceReadError reports a workbook that could not be opened or parsed.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("read connectome: %v", e.Err)
	}
	return fmt.Sprintf("read connectome %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// MalformedRowError reports a connection count cell that is not a
// non-negative integer. Row is the 0-based row index within the sheet.
type MalformedRowError struct {
	Sheet  int
	Row    int
	Column int
	Value  string
	Err    error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("sheet %d row %d column %d: invalid connection count %q: %v",
		e.Sheet, e.Row, e.Column, e.Value, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }
