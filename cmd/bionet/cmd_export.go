package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvandessel/bionet/internal/convert"
	"github.com/nvandessel/bionet/internal/store"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Build the network and write it to a SQLite database",
		Long: `Build the network from the connectome workbook and store its neurons,
synapse groups and build metadata in a SQLite database. An existing
database at the same path is replaced.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")

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
			if err := store.Export(ctx, dbPath, res.Network); err != nil {
				return fmt.Errorf("export %s: %w", dbPath, err)
			}

			db, err := store.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			defer db.Close()
			stats, err := db.Stats(ctx)
			if err != nil {
				return err
			}
			logs.log.Info("network exported", "db", dbPath, "neurons", stats.Neurons, "groups", stats.Groups)

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]interface{}{
					"db":    dbPath,
					"stats": stats,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d neurons and %d synapse groups (%d synapses) to %s\n",
				stats.Neurons, stats.Groups, stats.Synapses, dbPath)
			return nil
		},
	}
	addSourceFlags(cmd)
	cmd.Flags().String("db", "bionet.db", "SQLite database to write")
	return cmd
}
