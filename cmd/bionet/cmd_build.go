package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/bionet/internal/convert"
)

func newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Convert a connectome workbook into a network file",
		Long: `Load the connectome workbook, index its neurons, draw one weight per
connected neuron pair and write the network file.

Examples:
  bionet build --connectome CElegansNeuronTables.xls -o CElegans_network.txt
  bionet build --seed 42 --min-weight 0.1 --max-weight 0.9
  bionet build --format legacy --generator java`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			logs := newLoggers(cmd, cfg)
			defer logs.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			res, err := convert.Run(ctx, cfg, logs.options())
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printBuildSummary(cmd, res)
			return nil
		},
	}
	addSourceFlags(cmd)
	addOutputFlags(cmd)
	return cmd
}

func printBuildSummary(cmd *cobra.Command, res *convert.Result) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s (%s format)\n", res.Output, res.Format)
	fmt.Fprintf(out, "  rows:     %d connections, %d motor, %d from sensory neurons\n",
		res.Rows.Connections, res.Rows.MotorRows, res.Rows.SensoryRows)
	fmt.Fprintf(out, "  neurons:  %d (%d sensory, %d motor, %d other; %d excitatory)\n",
		res.Neurons, res.Sensors, res.Motors, res.Others, res.Excitatory)
	fmt.Fprintf(out, "  synapses: %d in %d groups\n", res.Synapses, res.Groups)
	fmt.Fprintf(out, "  weights:  seed %d, %s generator\n", res.Seed, res.Generator)
	if res.RunID != "" {
		fmt.Fprintf(out, "  run id:   %s\n", res.RunID)
	}
}
