package mcp

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nvandessel/bionet/internal/config"
	"github.com/nvandessel/bionet/internal/convert"
	"github.com/nvandessel/bionet/internal/netfile"
	"github.com/nvandessel/bionet/internal/pathutil"
	"github.com/nvandessel/bionet/internal/ratelimit"
	"github.com/nvandessel/bionet/internal/visualization"
)

// registerTools registers all bionet MCP tools with the server.
func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolBuild,
		Description: "Convert a connectome workbook into a neuron/synapse network file with randomized synapse weights",
	}, s.handleBuild)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolInspect,
		Description: "Read a network file and report band sizes, synapse counts and the excitatory ratio",
	}, s.handleInspect)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        ratelimit.ToolGraph,
		Description: "Build the network from a connectome workbook and render it as Graphviz DOT or JSON",
	}, s.handleGraph)
}

// logTool records a tool call's outcome.
func (s *Server) logTool(tool string, start time.Time, err error) {
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		s.logger.Warn("tool failed", "tool", tool, "elapsed", elapsed, "error", err)
		return
	}
	s.logger.Info("tool completed", "tool", tool, "elapsed", elapsed)
}

// buildConfig layers the call's arguments over the server defaults. Paths
// supplied by the call must lie under the server roots.
func (s *Server) buildConfig(args BuildInput) (*config.BionetConfig, error) {
	cfg := *s.defaults
	if args.Connectome != "" {
		p, err := pathutil.Confine(args.Connectome, s.roots)
		if err != nil {
			return nil, fmt.Errorf("connectome: %w", err)
		}
		cfg.Source = p
	}
	if args.Output != "" {
		p, err := pathutil.Confine(args.Output, s.roots)
		if err != nil {
			return nil, fmt.Errorf("output: %w", err)
		}
		cfg.Output.Path = p
	}
	if args.Format != "" {
		cfg.Output.Format = args.Format
	}
	if args.MinWeight != nil {
		cfg.Weights.Min = float32(*args.MinWeight)
	}
	if args.MaxWeight != nil {
		cfg.Weights.Max = float32(*args.MaxWeight)
	}
	if args.Seed != nil {
		cfg.Random.Seed = *args.Seed
	}
	if args.Generator != "" {
		cfg.Random.Generator = args.Generator
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (s *Server) handleBuild(ctx context.Context, req *sdk.CallToolRequest, args BuildInput) (_ *sdk.CallToolResult, _ BuildOutput, retErr error) {
	start := time.Now()
	defer func() { s.logTool(ratelimit.ToolBuild, start, retErr) }()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolBuild); err != nil {
		return nil, BuildOutput{}, err
	}

	cfg, err := s.buildConfig(args)
	if err != nil {
		return nil, BuildOutput{}, fmt.Errorf("invalid build settings: %w", err)
	}

	res, err := convert.Run(ctx, cfg, convert.Options{Logger: s.logger, Decisions: s.decisions})
	if err != nil {
		return nil, BuildOutput{}, err
	}

	out := BuildOutput{
		Output: res.Output,
		Format: res.Format,
		Seed:   res.Seed,
		RunID:  res.RunID,
		Stats:  res.Network.Stats(),
	}
	out.Message = fmt.Sprintf("Wrote %d neurons and %d synapses to %s", out.Stats.Neurons, out.Stats.Synapses, filepath.Base(res.Output))
	return nil, out, nil
}

func (s *Server) handleInspect(ctx context.Context, req *sdk.CallToolRequest, args InspectInput) (_ *sdk.CallToolResult, _ InspectOutput, retErr error) {
	start := time.Now()
	defer func() { s.logTool(ratelimit.ToolInspect, start, retErr) }()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolInspect); err != nil {
		return nil, InspectOutput{}, err
	}

	path := s.defaults.Output.Path
	if args.Path != "" {
		p, err := pathutil.Confine(args.Path, s.roots)
		if err != nil {
			return nil, InspectOutput{}, fmt.Errorf("path: %w", err)
		}
		path = p
	}
	format, err := netfile.ParseFormat(args.Format)
	if err != nil {
		return nil, InspectOutput{}, err
	}

	n, err := netfile.ReadFile(path, format)
	if err != nil {
		return nil, InspectOutput{}, err
	}
	return nil, InspectOutput{Path: path, Stats: n.Stats()}, nil
}

func (s *Server) handleGraph(ctx context.Context, req *sdk.CallToolRequest, args GraphInput) (_ *sdk.CallToolResult, _ GraphOutput, retErr error) {
	start := time.Now()
	defer func() { s.logTool(ratelimit.ToolGraph, start, retErr) }()

	if err := ratelimit.CheckLimit(s.toolLimiters, ratelimit.ToolGraph); err != nil {
		return nil, GraphOutput{}, err
	}

	format := visualization.FormatDOT
	if args.Format != "" {
		f, err := visualization.ParseFormat(args.Format)
		if err != nil {
			return nil, GraphOutput{}, err
		}
		format = f
	}

	cfg, err := s.buildConfig(BuildInput{Connectome: args.Connectome})
	if err != nil {
		return nil, GraphOutput{}, fmt.Errorf("invalid build settings: %w", err)
	}
	res, err := convert.Network(ctx, cfg, convert.Options{Logger: s.logger})
	if err != nil {
		return nil, GraphOutput{}, err
	}

	out := GraphOutput{Format: string(format)}
	switch format {
	case visualization.FormatJSON:
		out.Graph = visualization.RenderJSON(res.Network)
	default:
		out.Graph = visualization.RenderDOT(res.Network)
	}
	return nil, out, nil
}
