package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/user-auth-service/internal/config"
	"github.com/spec-kit/user-auth-service/internal/observability"
)

// newRootCmd builds the authctl command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "authctl",
		Short: "Administrative tasks for the user auth service.",
		Long: `authctl runs maintenance tasks against the user auth service's store:

	• apply or roll back the embedded database migrations
	• create accounts with an explicit role, bypassing public registration
	• hash passwords for manual seeding

Configuration is read from the same environment variables as the API.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newMigrateCmd(),
		newCreateUserCmd(),
		newHashPasswordCmd(),
	)
	return root
}

// loadRuntime reads configuration and builds a logger for commands that touch
// the store.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
