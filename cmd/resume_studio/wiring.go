package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/jonathan/resume-studio/internal/config"
	"github.com/jonathan/resume-studio/internal/crawl"
	"github.com/jonathan/resume-studio/internal/db"
	"github.com/jonathan/resume-studio/internal/fetch"
	"github.com/jonathan/resume-studio/internal/normalize"
	"github.com/jonathan/resume-studio/internal/storage"
	"github.com/jonathan/resume-studio/internal/types"
)

// loadConfig reads the --config file, environment and defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// crawlOptions selects which crawl backends are wired.
type crawlOptions struct {
	// LocalOnly skips the crawl API and scrapes directly.
	LocalOnly bool
	// NoCache skips the database page cache even when DATABASE_URL is set.
	NoCache bool
}

// newCrawlService wires the crawl API, the local scraper and the page cache.
// The returned cleanup closes the service and the database pool.
func newCrawlService(ctx context.Context, cfg *config.Config, opts crawlOptions) (*crawl.Service, func(), error) {
	svcOpts := crawl.ServiceOptions{
		Local:   fetch.NewScraper(nil, cfg.UseBrowser, cfg.Verbose),
		Verbose: cfg.Verbose,
	}

	if !opts.LocalOnly && crawlAPIConfigured(cfg) {
		client := crawl.NewClient(cfg.CrawlAPIBase, cfg.CrawlAPIKey, nil)
		svcOpts.Orchestrator = crawl.NewOrchestrator(client, crawl.OrchestratorOptions{
			PollInterval: time.Duration(cfg.CrawlPollInterval),
			Timeout:      time.Duration(cfg.CrawlTimeout),
			Verbose:      cfg.Verbose,
		})
	}

	var database *db.DB
	if !opts.NoCache && cfg.DatabaseURL != "" {
		var err error
		database, err = openDatabase(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		svcOpts.Cache = db.NewPageCache(database, time.Duration(cfg.CacheTTL))
	}

	svc := crawl.NewService(crawl.NewTracker(), svcOpts)
	cleanup := func() {
		svc.Close()
		if database != nil {
			database.Close()
		}
	}
	return svc, cleanup, nil
}

// crawlAPIConfigured reports whether the crawl API can be used. The hosted API
// needs a key; a self-hosted base URL may not.
func crawlAPIConfigured(cfg *config.Config) bool {
	return cfg.CrawlAPIKey != "" || cfg.CrawlAPIBase != config.DefaultCrawlAPIBase
}

// openDatabase connects to DATABASE_URL and applies the schema.
func openDatabase(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return database, nil
}

// newArtifactStore returns the bucket store when ARTIFACT_BUCKET is set,
// otherwise a directory store when ARTIFACT_DIR is set.
func newArtifactStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch {
	case cfg.ArtifactBucket != "":
		store, err := storage.NewS3Store(ctx, storage.S3Options{
			Bucket:    cfg.ArtifactBucket,
			Region:    cfg.ArtifactRegion,
			Endpoint:  cfg.ArtifactEndpoint,
			AccessKey: cfg.ArtifactAccessKey,
			SecretKey: cfg.ArtifactSecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create artifact store: %w", err)
		}
		return store, nil
	case cfg.ArtifactDir != "":
		return storage.NewLocalStore(cfg.ArtifactDir), nil
	default:
		return nil, fmt.Errorf("no artifact storage configured: set ARTIFACT_BUCKET or ARTIFACT_DIR")
	}
}

// loadEditor seeds an editor from the seed file, falling back to the default resume.
func loadEditor(seedPath string) *normalize.Editor {
	raw, err := os.ReadFile(seedPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Printf("[SEED] Failed to read %s: %v", seedPath, err)
		}
		return normalize.NewEditor(types.DefaultResumeData(), types.DefaultEmployer)
	}

	result, err := normalize.Normalize(types.DefaultResumeData(), raw)
	if err != nil {
		log.Printf("[SEED] Ignoring %s: %v", seedPath, err)
		return normalize.NewEditor(types.DefaultResumeData(), types.DefaultEmployer)
	}
	return normalize.NewEditor(result.Data, result.Employer)
}

// readInput reads path, or stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return content, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return content, nil
}
