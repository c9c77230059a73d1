package commands

import (
	"errors"
	"fmt"
	"time"

	"tickr/internal/auth"

	"github.com/spf13/cobra"
)

// NewTokenCommand creates a command that signs a session token with
// JWT_SECRET, for calling a local server without the identity provider.
func NewTokenCommand() *cobra.Command {
	var (
		id  auth.Identity
		ttl time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign a development session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if id.UserID == "" {
				return errors.New("--user is required")
			}
			cfg, _ := load()
			if ttl == 0 {
				ttl = time.Duration(cfg.JWTExpiryHours) * time.Hour
			}

			token, err := auth.GenerateToken(cfg.JWTSecret, id, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVarP(&id.UserID, "user", "u", "", "user id (token subject)")
	cmd.Flags().StringVarP(&id.Email, "email", "e", "", "email claim")
	cmd.Flags().StringVar(&id.Name, "name", "", "name claim")
	cmd.Flags().StringVar(&id.AvatarURL, "picture", "", "avatar URL claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default JWT_EXPIRY_HOURS)")
	return cmd
}
