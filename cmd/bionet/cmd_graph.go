package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/bionet/internal/convert"
	"github.com/nvandessel/bionet/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the built network as a graph",
		Long: `Build the network from the connectome workbook and print it in DOT
(Graphviz) or JSON format. No network file is written.

Examples:
  bionet graph | dot -Tsvg > network.svg
  bionet graph --graph-format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("graph-format")
			format, err := visualization.ParseFormat(name)
			if err != nil {
				return err
			}

			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			logs := newLoggers(cmd, cfg)
			defer logs.Close()

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			res, err := convert.Network(ctx, cfg, logs.options())
			if err != nil {
				return err
			}

			switch format {
			case visualization.FormatJSON:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(visualization.RenderJSON(res.Network)); err != nil {
					return fmt.Errorf("encode JSON: %w", err)
				}
			default:
				fmt.Fprint(cmd.OutOrStdout(), visualization.RenderDOT(res.Network))
			}
			return nil
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().String("graph-format", "dot", "Graph format: dot or json")
	return cmd
}
