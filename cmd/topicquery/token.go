package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/heartmarshall/topicreview-backend/internal/auth"
)

// newTokenCmd mints an access token for local testing of the HTTP API.
func newTokenCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			accountID, err := uuid.Parse(v.GetString("account"))
			if err != nil {
				return fmt.Errorf("--account must be an account id: %w", err)
			}
			cfg, err := loadConfig(v.GetString("config"))
			if err != nil {
				return err
			}

			jwt := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, v.GetDuration("ttl"))
			token, err := jwt.GenerateAccessToken(accountID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	f := cmd.Flags()
	f.String("account", "", "account id the token is issued for")
	f.Duration("ttl", time.Hour, "token lifetime")
	_ = v.BindPFlags(f)
	return cmd
}
