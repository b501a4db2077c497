// Package models defines the connectome records and the neuron/synapse
// network derived from them.
package models

// MuscleType is the synapse type given to every motor-neuron relation.
const MuscleType = "Muscle"

// GapJunctionType marks an electrical synapse. Every other type is chemical.
const GapJunctionType = "GapJunction"

// Row is one relation from the connectome workbook.
type Row struct {
	// Origin is the presynaptic neuron name.
	Origin string `json:"origin" yaml:"origin"`

	// Target is the postsynaptic neuron or muscle name.
	Target string `json:"target" yaml:"target"`

	// Type is the synapse kind ("Send", "GapJunction", ...) or MuscleType
	// for motor rows.
	Type string `json:"type" yaml:"type"`

	// Connections is the number of individual synapses between the pair.
	Connections int `json:"connections" yaml:"connections"`

	// Transmitter is the neurotransmitter label, e.g. "Acetylcholine".
	Transmitter string `json:"transmitter" yaml:"transmitter"`

	// Sensory is set when the origin is listed on the sensory sheet.
	Sensory bool `json:"sensory" yaml:"sensory"`

	// Motor is set for rows read from the motor sheet.
	Motor bool `json:"motor" yaml:"motor"`
}
