package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/config"
	"github.com/srbeng/srb-site/internal/content/domain"
	"github.com/srbeng/srb-site/internal/storage"
)

var restoreYes bool

func init() {
	restoreCmd.Flags().BoolVar(&restoreYes, "yes", false, "skip the confirmation guard")
	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace projects and services with the canonical data set",
	Long: `Wipe the projects and services tables and insert the published data set
under its stable ids.

Examples:
  # Restore the hosted backend
  SUPABASE_URL=... SUPABASE_ANON_KEY=... srbctl restore --yes`,
	RunE: runRestore,
}

func runRestore(cmd *cobra.Command, _ []string) error {
	if !restoreYes {
		return fmt.Errorf("restore wipes both tables; pass --yes to continue")
	}
	return withStore(cmd, false, func(ctx context.Context, _ *config.Config, log *zap.Logger, store storage.Store) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Restoring %s backend\n", store.Name())

		projects, err := store.ReplaceProjects(ctx, domain.CanonicalProjects())
		if err != nil {
			return fmt.Errorf("restore projects: %w", err)
		}
		fmt.Fprintf(out, "  projects: %d\n", projects)

		services, err := store.ReplaceServices(ctx, domain.CanonicalServices())
		if err != nil {
			return fmt.Errorf("restore services: %w", err)
		}
		fmt.Fprintf(out, "  services: %d\n", services)

		log.Info("restore complete", zap.Int("projects", projects), zap.Int("services", services))
		return nil
	})
}
