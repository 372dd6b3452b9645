package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/songlingo/songlingo/internal/database"
	"github.com/songlingo/songlingo/schemas"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			return database.Migrate(db, schemas.Migrations, "migrations")
		},
	}
}
