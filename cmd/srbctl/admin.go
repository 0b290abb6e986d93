package main

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/srbeng/srb-site/config"
	authdomain "github.com/srbeng/srb-site/internal/auth/domain"
	"github.com/srbeng/srb-site/internal/storage"
)

var (
	adminEmail    string
	adminPassword string
	adminRole     string
)

func init() {
	setPasswordCmd.Flags().StringVar(&adminEmail, "email", "", "admin email (required)")
	setPasswordCmd.Flags().StringVar(&adminPassword, "password", "", "new password (required)")
	setPasswordCmd.Flags().StringVar(&adminRole, "role", authdomain.DefaultRole, "role stored on a new row")
	_ = setPasswordCmd.MarkFlagRequired("email")
	_ = setPasswordCmd.MarkFlagRequired("password")

	adminCmd.AddCommand(setPasswordCmd)
	rootCmd.AddCommand(adminCmd)
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage admin_users rows",
}

var setPasswordCmd = &cobra.Command{
	Use:   "set-password",
	Short: "Create an admin or replace their password",
	Long: `Upsert an admin_users row by email.

Examples:
  srbctl admin set-password --email admin@srbeng.com --password 's3cret!'`,
	Args: cobra.NoArgs,
	RunE: runSetPassword,
}

func runSetPassword(cmd *cobra.Command, _ []string) error {
	email := strings.TrimSpace(adminEmail)
	if email == "" {
		return fmt.Errorf("--email must not be blank")
	}
	if utf8.RuneCountInString(adminPassword) < authdomain.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", authdomain.MinPasswordLength)
	}

	return withStore(cmd, false, func(ctx context.Context, _ *config.Config, log *zap.Logger, store storage.Store) error {
		u, err := store.Upsert(ctx, email, adminPassword, adminRole)
		if err != nil {
			return fmt.Errorf("upsert admin: %w", err)
		}
		log.Info("admin upserted", zap.String("admin_id", u.ID))
		fmt.Fprintf(cmd.OutOrStdout(), "Admin %s (%s) saved in %s backend\n", u.Email, u.RoleOrDefault(), store.Name())
		return nil
	})
}
