package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a crawl access token",
	Long:  "Issue a bearer token for the crawl endpoints, signed with CRAWL_TOKEN_SECRET and valid for CRAWL_TOKEN_TTL.",
	Args:  cobra.NoArgs,
	RunE:  runToken,
}

var tokenSubject string

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "cli", "Who the token is issued to")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	jwtConfig, err := cfg.JWT()
	if err != nil {
		return fmt.Errorf("failed to create token config: %w", err)
	}
	if jwtConfig == nil {
		return fmt.Errorf("CRAWL_TOKEN_SECRET is not set")
	}

	token, expiresAt, err := server.NewTokenService(jwtConfig).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "Expires %s\n", expiresAt.UTC().Format(time.RFC3339))
	return nil
}
