package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Environment variable names.
const (
	EnvHost              = "APP_HOST"
	EnvPort              = "APP_PORT"
	EnvSeedPath          = "SEED_PATH"
	EnvCrawlAPIBase      = "CRAWL_API_BASE"
	EnvCrawlAPIKey       = "CRAWL_API_KEY"
	EnvCrawlPollInterval = "CRAWL_POLL_INTERVAL"
	EnvCrawlTimeout      = "CRAWL_TIMEOUT"
	EnvUseBrowser        = "CRAWL_USE_BROWSER"
	EnvVerbose           = "VERBOSE"
	EnvDatabaseURL       = "DATABASE_URL"
	EnvCacheTTL          = "CRAWL_CACHE_TTL"
	EnvTokenSecret       = "CRAWL_TOKEN_SECRET"
	EnvTokenTTL          = "CRAWL_TOKEN_TTL"
	EnvArtifactDir       = "ARTIFACT_DIR"
	EnvArtifactBucket    = "ARTIFACT_BUCKET"
	EnvArtifactEndpoint  = "ARTIFACT_ENDPOINT"
	EnvArtifactRegion    = "ARTIFACT_REGION"
	EnvArtifactAccessKey = "ARTIFACT_ACCESS_KEY"
	EnvArtifactSecretKey = "ARTIFACT_SECRET_KEY"
	EnvArtifactPrefix    = "ARTIFACT_PREFIX"
)

// ApplyEnv overrides fields with any environment variables that are set.
// Malformed numbers and durations are logged and ignored.
func (c *Config) ApplyEnv() {
	c.Host = getEnvString(EnvHost, c.Host)
	c.Port = getEnvInt(EnvPort, c.Port)
	c.SeedPath = getEnvString(EnvSeedPath, c.SeedPath)

	c.CrawlAPIBase = getEnvString(EnvCrawlAPIBase, c.CrawlAPIBase)
	c.CrawlAPIKey = getEnvString(EnvCrawlAPIKey, c.CrawlAPIKey)
	c.CrawlPollInterval = Duration(getEnvDuration(EnvCrawlPollInterval, time.Duration(c.CrawlPollInterval)))
	c.CrawlTimeout = Duration(getEnvDuration(EnvCrawlTimeout, time.Duration(c.CrawlTimeout)))
	c.UseBrowser = getEnvBool(EnvUseBrowser, c.UseBrowser)
	c.Verbose = getEnvBool(EnvVerbose, c.Verbose)

	c.DatabaseURL = getEnvString(EnvDatabaseURL, c.DatabaseURL)
	c.CacheTTL = Duration(getEnvDuration(EnvCacheTTL, time.Duration(c.CacheTTL)))

	c.TokenSecret = getEnvString(EnvTokenSecret, c.TokenSecret)
	c.TokenTTL = Duration(getEnvDuration(EnvTokenTTL, time.Duration(c.TokenTTL)))

	c.ArtifactDir = getEnvString(EnvArtifactDir, c.ArtifactDir)
	c.ArtifactBucket = getEnvString(EnvArtifactBucket, c.ArtifactBucket)
	c.ArtifactEndpoint = getEnvString(EnvArtifactEndpoint, c.ArtifactEndpoint)
	c.ArtifactRegion = getEnvString(EnvArtifactRegion, c.ArtifactRegion)
	c.ArtifactAccessKey = getEnvString(EnvArtifactAccessKey, c.ArtifactAccessKey)
	c.ArtifactSecretKey = getEnvString(EnvArtifactSecretKey, c.ArtifactSecretKey)
	c.ArtifactPrefix = getEnvString(EnvArtifactPrefix, c.ArtifactPrefix)
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
		log.Printf("[CONFIG] Ignoring %s=%q: %v", key, value, err)
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		boolValue, err := strconv.ParseBool(value)
		if err == nil {
			return boolValue
		}
		log.Printf("[CONFIG] Ignoring %s=%q: %v", key, value, err)
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		duration, err := time.ParseDuration(value)
		if err == nil {
			return duration
		}
		log.Printf("[CONFIG] Ignoring %s=%q: %v", key, value, err)
	}
	return defaultValue
}
