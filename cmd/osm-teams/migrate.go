package main

import (
	"fmt"

	"github.com/developmentseed/osm-teams/cmd"
	"github.com/developmentseed/osm-teams/pkg/db"
	"github.com/developmentseed/osm-teams/pkg/db/migrate"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:                "migrate",
	Short:              "Run database migrations",
	Args:               cobra.NoArgs,
	PersistentPreRunE:  cmd.InitBackendContext,
	PersistentPostRunE: cmd.CloseDBContext,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		if err := migrate.Migrate(ctx, db.FromContext(ctx)); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}
		return nil
	},
}

var rollbackCmd = &cobra.Command{
	Use:   "rollback",
	Short: "Roll back the latest migration",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		ctx := c.Context()
		if err := migrate.Rollback(ctx, db.FromContext(ctx)); err != nil {
			return fmt.Errorf("rollback error: %w", err)
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(rollbackCmd)
}
