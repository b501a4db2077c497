// Package convert runs the connectome-to-network pipeline: load the
// workbook, build the indexed network, and write the network file.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nvandessel/bionet/internal/config"
	"github.com/nvandessel/bionet/internal/connectome"
	"github.com/nvandessel/bionet/internal/logging"
	"github.com/nvandessel/bionet/internal/models"
	"github.com/nvandessel/bionet/internal/netfile"
	"github.com/nvandessel/bionet/internal/network"
)

// Result describes a finished conversion.
type Result struct {
	Source     string             `json:"source"`
	Output     string             `json:"output,omitempty"`
	Format     string             `json:"format,omitempty"`
	RunID      string             `json:"run_id,omitempty"`
	Rows       connectome.Summary `json:"rows"`
	Neurons    int                `json:"neurons"`
	Sensors    int                `json:"sensors"`
	Motors     int                `json:"motors"`
	Others     int                `json:"others"`
	Excitatory int                `json:"excitatory"`
	Groups     int                `json:"groups"`
	Synapses   int                `json:"synapses"`
	Seed       int64              `json:"seed"`
	Generator  string             `json:"generator"`
	Elapsed    time.Duration      `json:"elapsed_ns"`

	// Network is the built network.
	Network *models.Network `json:"-"`
}

// Options carries the loggers for a run. Both may be nil.
type Options struct {
	Logger    *slog.Logger
	Decisions *logging.DecisionLogger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// Network loads cfg.Source and builds the network without writing it.
func Network(ctx context.Context, cfg *config.BionetConfig, opts Options) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	log := opts.logger()

	rows, err := connectome.LoadFile(cfg.Source)
	if err != nil {
		return nil, err
	}
	summary := connectome.Summarize(rows)
	log.Debug("connectome loaded", "source", cfg.Source, "rows", summary.Rows, "motor_rows", summary.MotorRows, "sensory_rows", summary.SensoryRows)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := network.Params{
		MinWeight: cfg.Weights.Min,
		MaxWeight: cfg.Weights.Max,
		Seed:      cfg.Random.Seed,
		Generator: cfg.Random.Generator,
	}
	if params.Generator == "" {
		params.Generator = network.GeneratorGo
	}
	// A nil *DecisionLogger stored in the interface would not compare nil.
	if opts.Decisions != nil {
		params.Tracer = opts.Decisions
	}

	n, err := network.Build(rows, params)
	if err != nil {
		return nil, fmt.Errorf("build network: %w", err)
	}
	log.Debug("network built", "neurons", n.NumNeurons, "sensors", n.NumSensors, "motors", n.NumMotors, "groups", len(n.Groups))

	return &Result{
		Source:     cfg.Source,
		RunID:      opts.Decisions.RunID(),
		Rows:       summary,
		Neurons:    n.NumNeurons,
		Sensors:    n.NumSensors,
		Motors:     n.NumMotors,
		Others:     n.NumOther(),
		Excitatory: n.ExcitatoryCount(),
		Groups:     len(n.Groups),
		Synapses:   n.ExpandedCount(),
		Seed:       n.Seed,
		Generator:  params.Generator,
		Elapsed:    time.Since(start),
		Network:    n,
	}, nil
}

// Run performs the full conversion and writes cfg.Output.Path.
func Run(ctx context.Context, cfg *config.BionetConfig, opts Options) (*Result, error) {
	format, err := netfile.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := Network(ctx, cfg, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := netfile.WriteFile(cfg.Output.Path, res.Network, format); err != nil {
		return nil, err
	}
	res.Output = cfg.Output.Path
	res.Format = format.String()
	res.Elapsed = time.Since(start)

	opts.logger().Info("network written",
		"output", res.Output,
		"format", res.Format,
		"neurons", res.Neurons,
		"synapses", res.Synapses,
		"elapsed", res.Elapsed.Round(time.Millisecond))
	return res, nil
}
