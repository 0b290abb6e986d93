// Command srbctl runs operator tasks against the configured site backend.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/config"
	"github.com/srbeng/srb-site/internal/bootstrap"
	"github.com/srbeng/srb-site/internal/logging"
	"github.com/srbeng/srb-site/internal/storage"
)

var (
	verbose bool
	version = "dev"
)

// Overridden in tests.
var (
	loadConfig = config.Load
	openStore  = func(ctx context.Context, cfg *config.Config, log *zap.Logger, migrate bool) (storage.Store, error) {
		return bootstrap.OpenStore(ctx, cfg, bootstrap.StoreOptions{Migrate: migrate, Logger: log})
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "srbctl",
	Short: "Operator commands for the SRB site backend",
	Long: `srbctl talks to the same table backend as the API server, selected from
the environment (REMOTE_DRIVER, SUPABASE_URL, DB_DSN, SQLITE_PATH).`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logging.New(logging.Options{
		Level:       level,
		Format:      "console",
		Environment: cfg.App.Environment,
		Service:     "srbctl",
		Version:     version,
	})
}

// withStore loads config, opens the backend and hands both to fn.
func withStore(cmd *cobra.Command, migrate bool, fn func(ctx context.Context, cfg *config.Config, log *zap.Logger, store storage.Store) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := openStore(ctx, cfg, log, migrate)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	return fn(ctx, cfg, log, store)
}
