package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/assetkit/pkg/assetstore"
)

func newMigrateCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the assets table migrations",
		Long: `Apply the assets table migrations to the database in ASSETS_DATABASE_URL.

The migrations table defaults to asset_migrations and is set with
ASSETS_DATABASE_MIGRATIONS_TABLE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := c.logger(cmd)

			cfg, err := c.dbConfig()
			if err != nil {
				return err
			}
			pool, err := assetstore.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := assetstore.Migrate(ctx, pool, cfg.MigrationsTable, log); err != nil {
				return err
			}
			log.InfoContext(ctx, "asset migrations applied")
			return nil
		},
	}
}
