package main

import (
	"github.com/spf13/cobra"

	"github.com/nvandessel/bionet/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve bionet tools over MCP (stdio)",
		Long: `Run a Model Context Protocol server on stdin/stdout exposing the
bionet_build, bionet_inspect and bionet_graph tools. Tool arguments override
the effective configuration for that call only. Paths passed by a client must
lie under an --allow-dir directory, which defaults to the directories of the
configured workbook and output file. Logs go to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			logs := newLoggers(cmd, cfg)
			defer logs.Close()

			roots, _ := cmd.Flags().GetStringSlice("allow-dir")
			server, err := mcp.NewServer(&mcp.Config{
				Name:      "bionet",
				Version:   version,
				Defaults:  cfg,
				Logger:    logs.log,
				Decisions: logs.decisions,
				Roots:     roots,
			})
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			logs.log.Info("mcp server starting", "version", version)
			return server.Run(ctx)
		},
	}
	cmd.Flags().StringSlice("allow-dir", nil, "Directory tool calls may read from and write to (repeatable)")
	return cmd
}
