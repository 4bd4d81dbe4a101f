package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spec-kit/user-auth-service/internal/domain"
	"github.com/spec-kit/user-auth-service/internal/persistence"
	"github.com/spec-kit/user-auth-service/internal/service"
)

func newCreateUserCmd() *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:     "create-user [username] [email] [role]",
		Short:   "Create an account with an explicit role.",
		Long:    "Create an active account directly in the store. Unlike public registration the role is chosen by the operator. The password is read from --password or, when omitted, from the first line of stdin.",
		Example: "authctl create-user alice alice@hotel.example general_manager --password s3cret!\necho s3cret! | authctl create-user bob bob@hotel.example receptionist",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			role := domain.Role(args[2])
			if !role.Valid() {
				return fmt.Errorf("unknown role %q", args[2])
			}
			if password == "" {
				line, err := readLine(cmd.InOrStdin())
				if err != nil {
					return err
				}
				password = line
			}

			cfg, logger, err := loadRuntime()
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			if cfg.Postgres.DSN == "" {
				return errMissingDSN
			}
			pg, err := persistence.OpenPostgres(cmd.Context(), cfg.Postgres, logger)
			if err != nil {
				return err
			}
			defer pg.Close()

			authService, err := service.NewAuthService(*cfg, service.AuthDependencies{
				UserRepo: pg.UserStore(),
				Logger:   logger,
			})
			if err != nil {
				return err
			}

			user, err := authService.Register(cmd.Context(), service.RegisterInput{
				Username: args[0],
				Email:    args[1],
				Password: password,
				Role:     role,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) with id %s\n", user.Username, user.Role, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "account password (read from stdin when empty)")
	return cmd
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("password is required")
	}
	return line, nil
}
