package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "surety/internal/jwt_token"
	"surety/internal/platform/config"
	id "surety/pkg/domain"
)

// tokenAudience must match the audience the server validates.
const tokenAudience = "surety-api"

var tokenTTL time.Duration

func init() {
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}

var tokenCmd = &cobra.Command{
	Use:   "token <caller-address>",
	Short: "Mint a bearer token attributing API calls to a caller",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := id.ParseMemberID(args[0])
		if err != nil {
			return err
		}
		cfg, err := config.FromEnv()
		if err != nil {
			return err
		}
		token, err := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, tokenAudience).
			GenerateToken(caller, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}
