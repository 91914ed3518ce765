package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-studio/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the editor server",
	Long: `Start an HTTP server that hosts the editor, renders documents and proxies the crawl API.
The crawl endpoints require a bearer token when CRAWL_TOKEN_SECRET is set.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Interface to listen on (overrides APP_HOST)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides APP_PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveHost != "" {
		cfg.Host = serveHost
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	crawlService, cleanup, err := newCrawlService(context.Background(), cfg, crawlOptions{})
	if err != nil {
		return err
	}
	defer cleanup()

	opts := server.Options{
		Config: cfg,
		Editor: loadEditor(cfg.SeedPath),
		Crawl:  crawlService,
	}

	jwtConfig, err := cfg.JWT()
	if err != nil {
		return fmt.Errorf("failed to create token config: %w", err)
	}
	if jwtConfig != nil {
		opts.Tokens = server.NewTokenService(jwtConfig)
	}

	srv, err := server.New(opts)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
