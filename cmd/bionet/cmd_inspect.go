package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/bionet/internal/netfile"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <network-file>",
		Short: "Summarize a network file",
		Long:  `Read a network file and print its band sizes, synapse counts and excitatory ratio.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("format")
			format, err := netfile.ParseFormat(name)
			if err != nil {
				return err
			}

			n, err := netfile.ReadFile(args[0], format)
			if err != nil {
				return err
			}
			stats := n.Stats()

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]interface{}{
					"path":  args[0],
					"stats": stats,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s\n", args[0])
			fmt.Fprintf(out, "  neurons:       %d\n", stats.Neurons)
			fmt.Fprintf(out, "    sensory:     %d\n", stats.Sensors)
			fmt.Fprintf(out, "    motor:       %d\n", stats.Motors)
			fmt.Fprintf(out, "    other:       %d\n", stats.Others)
			fmt.Fprintf(out, "  excitatory:    %d (%.1f%%)\n", stats.Excitatory, stats.ExcitatoryRatio*100)
			fmt.Fprintf(out, "  synapses:      %d in %d groups\n", stats.Synapses, stats.Groups)
			fmt.Fprintf(out, "  gap junctions: %d groups\n", stats.GapJunctions)
			return nil
		},
	}
	cmd.Flags().String("format", "expanded", "Network file format: expanded or legacy")
	return cmd
}
