package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/config"
	"github.com/srbeng/srb-site/internal/storage"
)

func init() {
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the site tables",
	Long: `Apply the table schema to the configured backend. The postgres driver runs
its DDL; sqlite creates its tables on open. The hosted and in-memory backends
have nothing to migrate.`,
	Args: cobra.NoArgs,
	RunE: runMigrate,
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, true, func(ctx context.Context, cfg *config.Config, _ *zap.Logger, store storage.Store) error {
		switch cfg.RemoteDriver() {
		case config.DriverPostgres, config.DriverSQLite:
			if err := store.Ping(ctx); err != nil {
				return fmt.Errorf("ping after migrate: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema applied to %s backend\n", store.Name())
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "Nothing to migrate for %s backend\n", store.Name())
		}
		return nil
	})
}
