package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "bionet",
		Short: "Connectome to neural network converter",
		Long: `bionet converts a connectome workbook into a neuron/synapse network file.

The workbook holds three sheets: neuron-to-neuron connections, neuron-to-muscle
connections and sensory neurons. Neurons are indexed sensory first, then motor,
then everything else, and every synapse gets a seeded random weight.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ./bionet.yaml when present)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug or trace")

	rootCmd.AddCommand(
		newVersionCmd(),
		newBuildCmd(),
		newInspectCmd(),
		newGraphCmd(),
		newExportCmd(),
		newConfigCmd(),
		newMCPServerCmd(),
	)
	return rootCmd
}
