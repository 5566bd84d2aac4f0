package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/geocoder89/devjobs/internal/db"
	"github.com/geocoder89/devjobs/internal/schema"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print which ads table and optional user columns the database has",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		pool, err := db.NewPool(cmd.Context(), cfg.DB)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer pool.Close()

		gw := db.NewGateway(pool, cfg.DB.QueryTimeout, nil)
		resolver := schema.NewResolver(schema.NewProbe(gw, nil), cfg.SchemaCacheTTL)

		snap, err := resolver.Snapshot(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		return enc.Encode(snap)
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
