package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/assetkit/pkg/assetstore"
	"github.com/dmitrymomot/assetkit/pkg/health"
)

const envDatabaseURL = "ASSETS_DATABASE_URL"

func newHealthCommand(c *cli) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check that storage and the database are reachable",
		Long: `Check that storage and the database are reachable.

The database is checked only when ASSETS_DATABASE_URL is set. The command
fails when any check fails.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			log := c.logger(cmd)

			kit, err := c.kit(cmd)
			if err != nil {
				return err
			}
			checks := kit.Checks()

			if c.getenv(envDatabaseURL) != "" {
				cfg, err := c.dbConfig()
				if err != nil {
					return err
				}
				cfg.RetryAttempts = 1
				pool, connErr := assetstore.Connect(ctx, cfg)
				if connErr != nil {
					checks["database"] = func(context.Context) error { return connErr }
				} else {
					defer pool.Close()
					checks["database"] = assetstore.Healthcheck(pool)
				}
			}

			resp := health.Run(ctx, checks, health.WithTimeout(timeout), health.WithLogger(log))
			if err := writeYAML(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			return resp.Err()
		},
	}
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 5*time.Second, "timeout for all checks")
	return cmd
}

func (c *cli) getenv(key string) string {
	if c.env != nil {
		return c.env[key]
	}
	return os.Getenv(key)
}

func (c *cli) dbConfig() (assetstore.Config, error) {
	if c.env != nil {
		return assetstore.ConfigFromEnvMap(c.env)
	}
	return assetstore.ConfigFromEnv()
}
