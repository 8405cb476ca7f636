package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yukikurage/worklog-api/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		if err := database.Connect(cfg); err != nil {
			return err
		}
		if err := database.MigrateDatabase(database.GetDB()); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		logger.Info("migrations applied", "driver", cfg.DBDriver)
		return nil
	},
}
