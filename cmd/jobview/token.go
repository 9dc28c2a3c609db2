package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"jobview-engine/internal/secrets"
)

func newTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the admin token that guards reload and shutdown",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <token>",
			Short: "Store a token in the OS keychain",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := secrets.SetAdminToken(args[0]); err != nil {
					return fmt.Errorf("failed to store token: %w", err)
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "admin token stored")
				return err
			},
		},
		&cobra.Command{
			Use:   "generate",
			Short: "Generate, store and print a random token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				tok, err := secrets.RandomToken(24)
				if err != nil {
					return err
				}
				if err := secrets.SetAdminToken(tok); err != nil {
					return fmt.Errorf("failed to store token: %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
				return err
			},
		},
		&cobra.Command{
			Use:   "status",
			Short: "Report whether a token is configured",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				_, err := secrets.GetAdminToken()
				switch {
				case errors.Is(err, secrets.ErrNoAdminToken):
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "no admin token configured; admin endpoints are disabled")
				case err == nil:
					_, err = fmt.Fprintln(cmd.OutOrStdout(), "admin token configured")
				}
				return err
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the token from the OS keychain",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if err := secrets.DeleteAdminToken(); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "admin token removed")
				return err
			},
		},
	)
	return cmd
}
