package main

import (
	"context"
	"log/slog"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/nvandessel/bionet/internal/config"
	"github.com/nvandessel/bionet/internal/convert"
	"github.com/nvandessel/bionet/internal/logging"
)

// addSourceFlags registers the flags that shape how the network is built.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("connectome", "", "Connectome workbook (.xls, .xlsx or a directory of CSV sheets)")
	cmd.Flags().Float32("min-weight", 0, "Lower synapse weight bound")
	cmd.Flags().Float32("max-weight", 0, "Upper synapse weight bound")
	cmd.Flags().Int64("seed", 0, "Random seed for synapse weights")
	cmd.Flags().String("generator", "", "Weight generator: go or java")
}

// addOutputFlags registers the network file flags.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "Network file to write")
	cmd.Flags().String("format", "", "Network file format: expanded or legacy")
}

// loadSettings resolves the effective configuration: defaults, config file,
// BIONET_* environment, then any flag the user set.
func loadSettings(cmd *cobra.Command) (*config.BionetConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level, _ = flags.GetString("log-level")
	}
	if flags.Lookup("connectome") != nil && flags.Changed("connectome") {
		cfg.Source, _ = flags.GetString("connectome")
	}
	if flags.Lookup("min-weight") != nil && flags.Changed("min-weight") {
		cfg.Weights.Min, _ = flags.GetFloat32("min-weight")
	}
	if flags.Lookup("max-weight") != nil && flags.Changed("max-weight") {
		cfg.Weights.Max, _ = flags.GetFloat32("max-weight")
	}
	if flags.Lookup("seed") != nil && flags.Changed("seed") {
		cfg.Random.Seed, _ = flags.GetInt64("seed")
	}
	if flags.Lookup("generator") != nil && flags.Changed("generator") {
		cfg.Random.Generator, _ = flags.GetString("generator")
	}
	if flags.Lookup("output") != nil && flags.Changed("output") {
		cfg.Output.Path, _ = flags.GetString("output")
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Output.Format, _ = flags.GetString("format")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loggers holds the operational and decision loggers for one command run.
type loggers struct {
	log       *slog.Logger
	decisions *logging.DecisionLogger
}

func newLoggers(cmd *cobra.Command, cfg *config.BionetConfig) *loggers {
	l := &loggers{
		log:       logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr()),
		decisions: logging.NewDecisionLogger(cfg.Logging.DecisionDir, cfg.Logging.Level),
	}
	if l.decisions != nil {
		l.log.Debug("decision log enabled", "path", l.decisions.Path(), "run_id", l.decisions.RunID())
	}
	return l
}

func (l *loggers) options() convert.Options {
	return convert.Options{Logger: l.log, Decisions: l.decisions}
}

func (l *loggers) Close() {
	l.decisions.Close()
}

// signalContext returns a context cancelled on interrupt or termination.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}
