package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lead-studio/backend/internal/auth"
	"github.com/lead-studio/backend/internal/config"
	"github.com/spf13/cobra"
)

var (
	principal string
	ttl       time.Duration
)

// rootCmd signs a bearer token for local development.
var rootCmd = &cobra.Command{
	Use:   "issue-token",
	Short: "Sign a JWT for a caller principal",
	Long: `Sign an HS256 bearer token with JWT_SECRET and JWT_ISSUER from the
environment (or .env). The token is printed to stdout.`,
	Args: cobra.NoArgs,
	RunE: issueToken,
}

func issueToken(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if !cmd.Flags().Changed("ttl") {
		ttl = cfg.JWTExpiration
	}

	token, err := auth.GenerateJWT(cfg.JWTSecret, cfg.JWTIssuer, principal, ttl)
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func main() {
	rootCmd.Flags().StringVarP(&principal, "principal", "p", "", "caller principal to embed in the token")
	rootCmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime (defaults to JWT_EXPIRATION_HOURS)")
	_ = rootCmd.MarkFlagRequired("principal")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
