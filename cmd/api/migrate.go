package main

import (
	"log/slog"

	"github.com/geocoder89/devjobs/internal/db"
	"github.com/spf13/cobra"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all up migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(db.MigrateUp)
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrate(db.MigrateDown)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
}

func runMigrate(direction string) error {
	cfg := loadConfig()

	if err := db.Migrate(cfg.DB.MigrateURL(), direction); err != nil {
		return err
	}

	slog.Info("migrations applied", "direction", direction, "db", cfg.DB.Name)

	return nil
}
