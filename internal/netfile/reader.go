package netfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/golang/snappy"

	"github.com/nvandessel/bionet/internal/models"
)

// MaxNeurons bounds the neuron count Read accepts from a file header.
const MaxNeurons = 1 << 20

type lineReader struct {
	s    *bufio.Scanner
	line int
}

func (lr *lineReader) next(what string) (string, error) {
	if !lr.s.Scan() {
		if err := lr.s.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("line %d: unexpected end of file reading %s", lr.line+1, what)
	}
	lr.line++
	return strings.TrimSpace(lr.s.Text()), nil
}

func (lr *lineReader) num(what string) (int, error) {
	s, err := lr.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", lr.line, what, err)
	}
	return n, nil
}

func (lr *lineReader) float(what string) (float32, error) {
	s, err := lr.next(what)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, fmt.Errorf("line %d: %s: %w", lr.line, what, err)
	}
	return float32(f), nil
}

func (lr *lineReader) quoted(what string) (string, error) {
	s, err := lr.next(what)
	if err != nil {
		return "", err
	}
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("line %d: %s: expected quoted string, got %q", lr.line, what, s)
	}
	return s[1 : len(s)-1], nil
}

func (lr *lineReader) index(what string, numNeurons int) (int, error) {
	i, err := lr.num(what)
	if err != nil {
		return 0, err
	}
	if i < 0 || i >= numNeurons {
		return 0, fmt.Errorf("line %d: %s %d out of range [0, %d)", lr.line, what, i, numNeurons)
	}
	return i, nil
}

// Read parses a network file written in format f.
func Read(r io.Reader, f Format) (*models.Network, error) {
	if f != FormatExpanded && f != FormatLegacy {
		return nil, fmt.Errorf("unsupported network format %v", f)
	}
	lr := &lineReader{s: bufio.NewScanner(r)}

	numNeurons, err := lr.num("neuron count")
	if err != nil {
		return nil, err
	}
	numSensors, err := lr.num("sensor count")
	if err != nil {
		return nil, err
	}
	numMotors, err := lr.num("motor count")
	if err != nil {
		return nil, err
	}
	if numNeurons < 0 || numNeurons > MaxNeurons {
		return nil, fmt.Errorf("neuron count %d out of range [0, %d]", numNeurons, MaxNeurons)
	}
	if numSensors < 0 || numMotors < 0 || numSensors > numNeurons || numMotors > numNeurons-numSensors {
		return nil, fmt.Errorf("inconsistent band sizes %d/%d/%d", numNeurons, numSensors, numMotors)
	}

	n := models.NewNetwork(numNeurons, numSensors, numMotors)
	for i := 0; i < numNeurons; i++ {
		if err := readNeuron(lr, n, i); err != nil {
			return nil, err
		}
	}

	if f == FormatExpanded {
		err = readExpanded(lr, n)
	} else {
		err = readLegacy(lr, n)
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ReadFile opens path and parses it, decompressing CompressedExt files.
func ReadFile(path string, f Format) (*models.Network, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open network: %w", err)
	}
	defer file.Close()

	var r io.Reader = file
	if Compressed(path) {
		r = snappy.NewReader(file)
	}
	n, err := Read(r, f)
	if err != nil {
		return nil, fmt.Errorf("parse network %s: %w", path, err)
	}
	return n, nil
}

func readNeuron(lr *lineReader, n *models.Network, i int) error {
	idx, err := lr.num("neuron index")
	if err != nil {
		return err
	}
	if idx != i {
		return fmt.Errorf("line %d: neuron index %d out of order, want %d", lr.line, idx, i)
	}
	excitatory, err := lr.num("excitatory flag")
	if err != nil {
		return err
	}
	if _, err := lr.num("activation function"); err != nil {
		return err
	}
	if _, err := lr.float("bias"); err != nil {
		return err
	}
	if _, err := lr.float("activation"); err != nil {
		return err
	}
	name, err := lr.quoted("neuron name")
	if err != nil {
		return err
	}
	n.Neurons[i] = models.Neuron{
		Index:      i,
		Name:       name,
		Excitatory: excitatory != 0,
		Band:       n.BandOf(i),
	}
	return nil
}

// readExpanded folds individual synapse entries back into groups.
func readExpanded(lr *lineReader, n *models.Network) error {
	count, err := lr.num("synapse count")
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		origin, err := lr.index("origin index", n.NumNeurons)
		if err != nil {
			return err
		}
		target, err := lr.index("target index", n.NumNeurons)
		if err != nil {
			return err
		}
		weight, err := lr.float("weight")
		if err != nil {
			return err
		}
		code, err := lr.num("type code")
		if err != nil {
			return err
		}
		if _, err := lr.float("signal"); err != nil {
			return err
		}
		transmitter, err := lr.quoted("transmitter")
		if err != nil {
			return err
		}

		key := models.PairKey{Origin: origin, Target: target}
		if g, ok := n.Groups[key]; ok {
			g.Connections++
			continue
		}
		n.Groups[key] = &models.SynapseGroup{
			Origin:      origin,
			Target:      target,
			Type:        typeFromCode(code),
			Connections: 1,
			Transmitter: transmitter,
			Weight:      weight,
		}
	}
	return nil
}

func readLegacy(lr *lineReader, n *models.Network) error {
	count, err := lr.num("synapse count")
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		origin, err := lr.index("origin index", n.NumNeurons)
		if err != nil {
			return err
		}
		target, err := lr.index("target index", n.NumNeurons)
		if err != nil {
			return err
		}
		connections, err := lr.num("connections")
		if err != nil {
			return err
		}
		weight, err := lr.float("weight")
		if err != nil {
			return err
		}
		code, err := lr.num("type code")
		if err != nil {
			return err
		}
		if _, err := lr.float("signal"); err != nil {
			return err
		}
		transmitter, err := lr.quoted("transmitter")
		if err != nil {
			return err
		}
		n.Groups[models.PairKey{Origin: origin, Target: target}] = &models.SynapseGroup{
			Origin:      origin,
			Target:      target,
			Type:        typeFromCode(code),
			Connections: connections,
			Transmitter: transmitter,
			Weight:      weight,
		}
	}
	return nil
}

// typeFromCode recovers what the file can tell about a synapse type; the
// original chemical subtype is not stored.
func typeFromCode(code int) string {
	if code == 1 {
		return models.GapJunctionType
	}
	return "Chemical"
}
