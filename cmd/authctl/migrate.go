package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/user-auth-service/internal/persistence"
)

var errMissingDSN = errors.New("POSTGRES_DSN is required")

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Run the embedded database migrations.",
		Example:   "authctl migrate up\nauthctl migrate status",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(persistence.MigrateUp), string(persistence.MigrateDown), string(persistence.MigrateStatus)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if cfg.Postgres.DSN == "" {
				return errMissingDSN
			}
			command := persistence.MigrationCommand(args[0])
			if err := persistence.Migrate(cmd.Context(), cfg.Postgres.DSN, command, logger); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", command)
			return nil
		},
	}
}
