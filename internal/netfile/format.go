// Package netfile reads and writes the line-oriented network file consumed
// by the simulator.
//
// Two layouts exist. FormatExpanded (version 2) writes one record per
// individual synapse; FormatLegacy (version 1) writes one record per
// connected neuron pair with the connection count inline. They share the
// header and neuron section and are not byte-compatible.
package netfile

import (
	"fmt"
	"strconv"
	"strings"
)

// Format selects the synapse section layout.
type Format int

const (
	FormatLegacy   Format = 1
	FormatExpanded Format = 2
)

// String returns the configuration name of the format.
func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatExpanded:
		return "expanded"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps a configuration name to a Format. Empty selects
// FormatExpanded.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "expanded", "v2", "2":
		return FormatExpanded, nil
	case "legacy", "v1", "1":
		return FormatLegacy, nil
	default:
		return 0, fmt.Errorf("unknown network format %q (valid: expanded, legacy)", name)
	}
}

// CompressedExt marks network files stored as a snappy framed stream.
const CompressedExt = ".sz"

// Compressed reports whether path names a snappy-compressed network file.
func Compressed(path string) bool {
	return strings.HasSuffix(path, CompressedExt)
}

// Reserved neuron and synapse fields the simulator reads but the converter
// does not set.
const (
	neuronFunction = "1"
	reservedFloat  = "0.0"
)

// formatWeight renders a weight as the shortest decimal that reads back
// as the same float32, always with a fractional part.
func formatWeight(w float32) string {
	s := strconv.FormatFloat(float64(w), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func quote(s string) string {
	return `"` + s + `"`
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
