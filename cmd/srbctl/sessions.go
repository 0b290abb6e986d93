package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/config"
	authservice "github.com/srbeng/srb-site/internal/auth/service"
	"github.com/srbeng/srb-site/internal/bootstrap"
	"github.com/srbeng/srb-site/internal/jobs"
	"github.com/srbeng/srb-site/internal/storage"
)

func init() {
	rootCmd.AddCommand(sweepCmd)
}

var sweepCmd = &cobra.Command{
	Use:   "sweep-sessions",
	Short: "Destroy sessions whose admin no longer exists",
	Long: `Verify every stored admin session once and destroy the ones that fail.
Only meaningful with REDIS_ADDR set; in-process sessions die with the server.`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func runSweep(cmd *cobra.Command, _ []string) error {
	return withStore(cmd, false, func(ctx context.Context, cfg *config.Config, log *zap.Logger, store storage.Store) error {
		rdb, err := bootstrap.OpenRedis(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		if rdb == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "REDIS_ADDR not set; nothing to sweep")
			return nil
		}
		defer rdb.Close()

		mgr := authservice.NewManager(store, bootstrap.SessionStore(rdb), authservice.ManagerOptions{
			TTL:    cfg.Session.TTL,
			Logger: log,
		})
		removed, err := jobs.RunSessionSweep(ctx, mgr, log)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d session(s)\n", removed)
		return nil
	})
}
