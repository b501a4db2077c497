package models

import (
	"sort"
	"strings"
)

// Band is the index range a neuron is placed in.
type Band string

const (
	BandSensory Band = "sensory"
	BandMotor   Band = "motor"
	BandOther   Band = "other"
)

// Neuron is a unique neuron name with its assigned index.
type Neuron struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Excitatory bool   `json:"excitatory"`
	Band       Band   `json:"band"`
}

// PairKey addresses the synapse group between two neuron indices.
type PairKey struct {
	Origin int
	Target int
}

// SynapseGroup aggregates every synapse between one ordered pair of neurons.
// All Connections entries share Weight and the gap junction flag.
type SynapseGroup struct {
	Origin      int     `json:"origin"`
	Target      int     `json:"target"`
	Type        string  `json:"type"`
	Connections int     `json:"connections"`
	Transmitter string  `json:"transmitter"`
	Weight      float32 `json:"weight"`
}

// GapJunction reports whether the group is an electrical synapse.
func (g SynapseGroup) GapJunction() bool {
	return g.Type == GapJunctionType
}

// TypeCode is the serialized synapse type: 1 for gap junctions, 0 for chemical.
func (g SynapseGroup) TypeCode() int {
	if g.GapJunction() {
		return 1
	}
	return 0
}

// Network is the neuron/synapse graph produced from a connectome.
//
// Neurons are indexed so that [0, NumSensors) are sensory,
// [NumSensors, NumSensors+NumMotors) are motor targets and the rest are
// everything else.
type Network struct {
	NumNeurons int
	NumSensors int
	NumMotors  int

	// Neurons is indexed by Neuron.Index.
	Neurons []Neuron

	// Groups holds at most one synapse group per ordered index pair.
	Groups map[PairKey]*SynapseGroup

	// Seed is the random seed the weights were drawn with.
	Seed int64
}

// NewNetwork returns an empty network sized for the given band counts.
func NewNetwork(numNeurons, numSensors, numMotors int) *Network {
	return &Network{
		NumNeurons: numNeurons,
		NumSensors: numSensors,
		NumMotors:  numMotors,
		Neurons:    make([]Neuron, numNeurons),
		Groups:     make(map[PairKey]*SynapseGroup),
	}
}

// NumOther is the size of the band after the sensory and motor bands.
func (n *Network) NumOther() int {
	return n.NumNeurons - n.NumSensors - n.NumMotors
}

// BandOf returns the band an index falls in.
func (n *Network) BandOf(index int) Band {
	switch {
	case index < n.NumSensors:
		return BandSensory
	case index < n.NumSensors+n.NumMotors:
		return BandMotor
	default:
		return BandOther
	}
}

// Pairs returns the populated pair keys in row-major order.
func (n *Network) Pairs() []PairKey {
	keys := make([]PairKey, 0, len(n.Groups))
	for k := range n.Groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Origin != keys[j].Origin {
			return keys[i].Origin < keys[j].Origin
		}
		return keys[i].Target < keys[j].Target
	})
	return keys
}

// SortedGroups returns the synapse groups in row-major order.
func (n *Network) SortedGroups() []*SynapseGroup {
	keys := n.Pairs()
	groups := make([]*SynapseGroup, len(keys))
	for i, k := range keys {
		groups[i] = n.Groups[k]
	}
	return groups
}

// ExpandedCount is the total number of individual synapse entries.
func (n *Network) ExpandedCount() int {
	total := 0
	for _, g := range n.Groups {
		total += g.Connections
	}
	return total
}

// ExcitatoryCount is the number of excitatory neurons.
func (n *Network) ExcitatoryCount() int {
	count := 0
	for _, nr := range n.Neurons {
		if nr.Excitatory {
			count++
		}
	}
	return count
}

// NeuronByName looks up a neuron by its label.
func (n *Network) NeuronByName(name string) (Neuron, bool) {
	for _, nr := range n.Neurons {
		if nr.Name == name {
			return nr, true
		}
	}
	return Neuron{}, false
}

// Inhibitory reports whether a transmitter or synapse label names a GABA
// variant. Such neurons are classified as inhibitory.
func Inhibitory(label string) bool {
	return strings.HasPrefix(label, "GABA")
}

// Stats summarizes a network's shape.
type Stats struct {
	Neurons         int     `json:"neurons"`
	Sensors         int     `json:"sensors"`
	Motors          int     `json:"motors"`
	Others          int     `json:"others"`
	Excitatory      int     `json:"excitatory"`
	ExcitatoryRatio float64 `json:"excitatory_ratio"`
	Groups          int     `json:"groups"`
	GapJunctions    int     `json:"gap_junctions"`
	Synapses        int     `json:"synapses"`
}

// Stats computes band sizes and synapse counts.
func (n *Network) Stats() Stats {
	s := Stats{
		Neurons:    n.NumNeurons,
		Sensors:    n.NumSensors,
		Motors:     n.NumMotors,
		Others:     n.NumOther(),
		Excitatory: n.ExcitatoryCount(),
		Groups:     len(n.Groups),
		Synapses:   n.ExpandedCount(),
	}
	if s.Neurons > 0 {
		s.ExcitatoryRatio = float64(s.Excitatory) / float64(s.Neurons)
	}
	for _, g := range n.Groups {
		if g.GapJunction() {
			s.GapJunctions++
		}
	}
	return s
}
