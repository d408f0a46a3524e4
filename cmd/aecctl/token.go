package main

import (
	"fmt"
	"time"

	"github.com/admin-edit-comment/internal/auth"
	"github.com/spf13/cobra"
)

var (
	tokenLogin string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for an editorial user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := repos.User.GetByLogin(cmd.Context(), tokenLogin)
		if err != nil {
			return fmt.Errorf("failed to look up %s: %w", tokenLogin, err)
		}
		if user == nil {
			return fmt.Errorf("no user with login %q", tokenLogin)
		}
		if !user.CanEditPosts() {
			return fmt.Errorf("%s (%s) cannot use the comment box", user.Login, user.Role)
		}

		ttl := cfg.Auth.TokenTTL
		if tokenTTL > 0 {
			ttl = tokenTTL
		}
		token, err := auth.NewTokenManager(cfg.Auth.JWTSecret, ttl).Issue(user.ID)
		if err != nil {
			return err
		}

		log.Info().Int64("user_id", user.ID).Dur("ttl", ttl).Msg("Token issued")
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenLogin, "login", "", "login name of the user")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 0, "token lifetime (defaults to JWT_TTL)")
	tokenCmd.MarkFlagRequired("login")
}
