package netfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/snappy"

	"github.com/nvandessel/bionet/internal/models"
)

// SinkWriteError reports a network file that could not be created or
// written. A failure mid-write leaves a truncated file behind.
type SinkWriteError struct {
	Path string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("write network %s: %v", e.Path, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }

// lineWriter writes one value per line and keeps the first error.
type lineWriter struct {
	w   *bufio.Writer
	err error
}

func (lw *lineWriter) line(s string) {
	if lw.err != nil {
		return
	}
	if _, err := lw.w.WriteString(s); err != nil {
		lw.err = err
		return
	}
	lw.err = lw.w.WriteByte('\n')
}

func (lw *lineWriter) num(n int) {
	lw.line(strconv.Itoa(n))
}

// Write serializes n to w in the given format.
func Write(w io.Writer, n *models.Network, f Format) error {
	if f != FormatExpanded && f != FormatLegacy {
		return fmt.Errorf("unsupported network format %v", f)
	}

	lw := &lineWriter{w: bufio.NewWriter(w)}
	lw.num(n.NumNeurons)
	lw.num(n.NumSensors)
	lw.num(n.NumMotors)

	for _, nr := range n.Neurons {
		lw.num(nr.Index)
		lw.line(boolFlag(nr.Excitatory))
		lw.line(neuronFunction)
		lw.line(reservedFloat)
		lw.line(reservedFloat)
		lw.line(quote(nr.Name))
	}

	groups := n.SortedGroups()
	if f == FormatExpanded {
		writeExpanded(lw, groups, n.ExpandedCount())
	} else {
		writeLegacy(lw, groups)
	}

	if lw.err != nil {
		return lw.err
	}
	return lw.w.Flush()
}

func writeExpanded(lw *lineWriter, groups []*models.SynapseGroup, total int) {
	lw.num(total)
	for _, g := range groups {
		weight := formatWeight(g.Weight)
		for i := 0; i < g.Connections; i++ {
			lw.num(g.Origin)
			lw.num(g.Target)
			lw.line(weight)
			lw.num(g.TypeCode())
			lw.line(reservedFloat)
			lw.line(quote(g.Transmitter))
		}
	}
}

func writeLegacy(lw *lineWriter, groups []*models.SynapseGroup) {
	lw.num(len(groups))
	for _, g := range groups {
		lw.num(g.Origin)
		lw.num(g.Target)
		lw.num(g.Connections)
		lw.line(formatWeight(g.Weight))
		lw.num(g.TypeCode())
		lw.line(reservedFloat)
		lw.line(quote(g.Transmitter))
	}
}

// WriteFile creates (or truncates) path and writes n to it. Paths ending
// in CompressedExt are written as a snappy framed stream.
func WriteFile(path string, n *models.Network, f Format) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return &SinkWriteError{Path: path, Err: err}
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = &SinkWriteError{Path: path, Err: cerr}
		}
	}()

	if !Compressed(path) {
		if err := Write(file, n, f); err != nil {
			return &SinkWriteError{Path: path, Err: err}
		}
		return nil
	}

	sw := snappy.NewBufferedWriter(file)
	if err := Write(sw, n, f); err != nil {
		return &SinkWriteError{Path: path, Err: err}
	}
	if err := sw.Close(); err != nil {
		return &SinkWriteError{Path: path, Err: err}
	}
	return nil
}
