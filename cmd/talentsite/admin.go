package main

import (
	"context"
	"fmt"
	"os"

	"github.com/hevilin/talentsite/internal/config"
	"github.com/hevilin/talentsite/internal/logging"
	"github.com/hevilin/talentsite/internal/server"
	"github.com/hevilin/talentsite/internal/types"
	"github.com/spf13/cobra"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the administrator account",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create the administrator account",
	Long: `Create the back office administrator in the database.

The password can be passed with --password or through ADMIN_PASSWORD.`,
	RunE: runAdminCreate,
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminName, "name", "Administrator", "Display name")
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "Sign-in email (required)")
	adminCreateCmd.Flags().StringVar(&adminPassword, "password", "", "Password (defaults to ADMIN_PASSWORD env var)")
	_ = adminCreateCmd.MarkFlagRequired("email")

	adminCmd.AddCommand(adminCreateCmd)
	rootCmd.AddCommand(adminCmd)
}

func runAdminCreate(cmd *cobra.Command, _ []string) error {
	password := adminPassword
	if password == "" {
		password = os.Getenv("ADMIN_PASSWORD")
	}
	req := &types.CreateAdminRequest{Name: adminName, Email: adminEmail, Password: password}
	if err := req.Validate(); err != nil {
		return err
	}

	cfg, err := loadSettings(configPath)
	if err != nil {
		return err
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	database, err := connectDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	identity := server.NewIdentityService(database, passwordConfig, nil, logger)
	user, err := identity.CreateAdmin(ctx, req)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created administrator %s (%s)\n", user.Email, user.ID)
	return nil
}
