// Package constants provides named defaults shared by the bionet commands.
package constants

// Converter defaults.
const (
	// DefaultConnectomePath is the workbook read when no source is configured.
	DefaultConnectomePath = "../data/CElegansNeuronTables.xls"

	// DefaultNetworkPath is the network file written when no output is configured.
	DefaultNetworkPath = "CElegans_network.txt"

	// DefaultRandomSeed seeds the weight generator.
	DefaultRandomSeed = 4517
)

// Synapse weight bounds. Weights are drawn uniformly from [min, max).
const (
	DefaultMinSynapseWeight = 0.0
	DefaultMaxSynapseWeight = 1.0
)

// DecisionLogFile is the JSONL file the decision logger appends to.
const DecisionLogFile = "decisions.jsonl"
