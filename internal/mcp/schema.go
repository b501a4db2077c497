package mcp

import "github.com/nvandessel/bionet/internal/models"

// BuildInput defines the input for the bionet_build tool. Unset fields
// fall back to the server's configuration.
type BuildInput struct {
	Connectome string   `json:"connectome,omitempty" jsonschema:"Connectome workbook: .xls or .xlsx file, or a directory of CSV sheets"`
	Output     string   `json:"output,omitempty" jsonschema:"Path of the network file to write"`
	Format     string   `json:"format,omitempty" jsonschema:"Network file format: expanded or legacy"`
	MinWeight  *float64 `json:"min_weight,omitempty" jsonschema:"Lower synapse weight bound in [0, 1]"`
	MaxWeight  *float64 `json:"max_weight,omitempty" jsonschema:"Upper synapse weight bound in [0, 1]"`
	Seed       *int64   `json:"seed,omitempty" jsonschema:"Random seed for synapse weights"`
	Generator  string   `json:"generator,omitempty" jsonschema:"Weight generator: go or java"`
}

// BuildOutput defines the output for the bionet_build tool.
type BuildOutput struct {
	Output  string       `json:"output" jsonschema:"Path of the written network file"`
	Format  string       `json:"format" jsonschema:"Format the file was written in"`
	Seed    int64        `json:"seed" jsonschema:"Seed the weights were drawn with"`
	RunID   string       `json:"run_id,omitempty" jsonschema:"Decision log run ID, when decision logging is enabled"`
	Stats   models.Stats `json:"stats" jsonschema:"Band sizes and synapse counts"`
	Message string       `json:"message" jsonschema:"Human-readable result message"`
}

// InspectInput defines the input for the bionet_inspect tool.
type InspectInput struct {
	Path   string `json:"path" jsonschema:"Network file to read"`
	Format string `json:"format,omitempty" jsonschema:"Network file format: expanded (default) or legacy"`
}

// InspectOutput defines the output for the bionet_inspect tool.
type InspectOutput struct {
	Path  string       `json:"path" jsonschema:"Network file that was read"`
	Stats models.Stats `json:"stats" jsonschema:"Band sizes and synapse counts"`
}

// GraphInput defines the input for the bionet_graph tool.
type GraphInput struct {
	Connectome string `json:"connectome,omitempty" jsonschema:"Connectome workbook to build the graph from"`
	Format     string `json:"format,omitempty" jsonschema:"Graph format: dot (default) or json"`
}

// GraphOutput defines the output for the bionet_graph tool.
type GraphOutput struct {
	Format string      `json:"format" jsonschema:"Format of the rendered graph"`
	Graph  interface{} `json:"graph" jsonschema:"DOT source as a string, or a nodes/edges object for json"`
}
