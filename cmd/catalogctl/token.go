package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/myenglish-catalog/internal/auth"
	"github.com/heartmarshall/myenglish-catalog/internal/domain"
)

func newTokenCmd(load envLoader) *cobra.Command {
	var (
		role    string
		subject string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token signed with the configured secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := load()
			if err != nil {
				return err
			}
			if err := e.cfg.ValidateAuth(); err != nil {
				return err
			}

			r := domain.UserRole(role)
			if !r.IsValid() {
				return fmt.Errorf("--role %q: want viewer, editor or admin", role)
			}
			id := uuid.New()
			if subject != "" {
				if id, err = uuid.Parse(subject); err != nil {
					return fmt.Errorf("--subject: %w", err)
				}
			}

			jwt := auth.NewJWTManager(e.cfg.Auth.JWTSecret, e.cfg.Auth.JWTIssuer, e.cfg.Auth.AccessTokenTTL)
			tok, err := jwt.GenerateAccessToken(id, r)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", string(domain.UserRoleEditor), "viewer, editor or admin")
	cmd.Flags().StringVar(&subject, "subject", "", "caller id (random when empty)")
	return cmd
}
