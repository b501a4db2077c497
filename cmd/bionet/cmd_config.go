package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/bionet/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage bionet configuration",
		Long: `View the effective configuration or write a starter file.

Settings are resolved from defaults, ./bionet.yaml (or --config), BIONET_*
environment variables and command flags, in that order.

Examples:
  bionet config list          # Show effective settings
  bionet config init          # Write ./bionet.yaml with the defaults`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
		newConfigInitCmd(),
	)
	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(cfg)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source:               %s\n", cfg.Source)
			fmt.Fprintf(out, "output.path:          %s\n", cfg.Output.Path)
			fmt.Fprintf(out, "output.format:        %s\n", cfg.Output.Format)
			fmt.Fprintf(out, "weights.min:          %v\n", cfg.Weights.Min)
			fmt.Fprintf(out, "weights.max:          %v\n", cfg.Weights.Max)
			fmt.Fprintf(out, "random.seed:          %d\n", cfg.Random.Seed)
			fmt.Fprintf(out, "random.generator:     %s\n", cfg.Random.Generator)
			fmt.Fprintf(out, "logging.level:        %s\n", valueOrDefault(cfg.Logging.Level, "info"))
			fmt.Fprintf(out, "logging.decision_dir: %s\n", valueOrDefault(cfg.Logging.DecisionDir, "(disabled)"))
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [path]",
		Short: "Write a config file with the default settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.WriteDefault(path); err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{
					"status": "created",
					"path":   path,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
