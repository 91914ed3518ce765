// Package config loads server and CLI settings from a JSON file and the environment.
package config

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Defaults for settings that have one.
const (
	DefaultHost              = "0.0.0.0"
	DefaultPort              = 3000
	DefaultSeedPath          = "resume.json"
	DefaultCrawlAPIBase      = "https://api.firecrawl.dev"
	DefaultCrawlPollInterval = 1500 * time.Millisecond
	DefaultCrawlTimeout      = 60 * time.Second
	DefaultCacheTTL          = 24 * time.Hour
	DefaultTokenTTL          = 24 * time.Hour
	DefaultArtifactPrefix    = "resumes"
)

// Duration is a time.Duration that reads from JSON as "1.5s" or as a number of seconds.
type Duration time.Duration

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", v, err)
		}
		*d = Duration(parsed)
	case float64:
		*d = Duration(v * float64(time.Second))
	case nil:
		*d = 0
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Config holds every setting of the server and CLI.
// Zero values mean "unset" and are filled from defaults by MergeWithDefaults.
type Config struct {
	// Server
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	SeedPath string `json:"seed_path,omitempty"` // resume.json served at /resume.json

	// Crawl
	CrawlAPIBase      string   `json:"crawl_api_base,omitempty"`
	CrawlAPIKey       string   `json:"crawl_api_key,omitempty"`
	CrawlPollInterval Duration `json:"crawl_poll_interval,omitempty"`
	CrawlTimeout      Duration `json:"crawl_timeout,omitempty"`
	UseBrowser        bool     `json:"use_browser,omitempty"` // headless Chrome for JavaScript-rendered postings
	Verbose           bool     `json:"verbose,omitempty"`

	// Cache
	DatabaseURL string   `json:"database_url,omitempty"`
	CacheTTL    Duration `json:"cache_ttl,omitempty"`

	// Crawl access tokens
	TokenSecret string   `json:"token_secret,omitempty"`
	TokenTTL    Duration `json:"token_ttl,omitempty"`

	// Artifacts
	ArtifactDir       string `json:"artifact_dir,omitempty"`
	ArtifactBucket    string `json:"artifact_bucket,omitempty"`
	ArtifactEndpoint  string `json:"artifact_endpoint,omitempty"`
	ArtifactRegion    string `json:"artifact_region,omitempty"`
	ArtifactAccessKey string `json:"artifact_access_key,omitempty"`
	ArtifactSecretKey string `json:"artifact_secret_key,omitempty"`
	ArtifactPrefix    string `json:"artifact_prefix,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		SeedPath:          DefaultSeedPath,
		CrawlAPIBase:      DefaultCrawlAPIBase,
		CrawlPollInterval: Duration(DefaultCrawlPollInterval),
		CrawlTimeout:      Duration(DefaultCrawlTimeout),
		CacheTTL:          Duration(DefaultCacheTTL),
		TokenTTL:          Duration(DefaultTokenTTL),
		ArtifactPrefix:    DefaultArtifactPrefix,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Load builds the effective configuration: the optional file at path, then
// environment overrides, then defaults for anything still unset. The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535, got %d", c.Port)
	}
	if c.CrawlPollInterval < 0 {
		return fmt.Errorf("config error: 'crawl_poll_interval' must be positive")
	}
	if c.CrawlTimeout < 0 {
		return fmt.Errorf("config error: 'crawl_timeout' must be positive")
	}
	if c.CrawlPollInterval > 0 && c.CrawlTimeout > 0 && c.CrawlPollInterval >= c.CrawlTimeout {
		return fmt.Errorf("config error: 'crawl_poll_interval' (%s) must be shorter than 'crawl_timeout' (%s)",
			time.Duration(c.CrawlPollInterval), time.Duration(c.CrawlTimeout))
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("config error: 'cache_ttl' must be non-negative")
	}
	if c.CrawlAPIBase != "" && !strings.HasPrefix(c.CrawlAPIBase, "http://") && !strings.HasPrefix(c.CrawlAPIBase, "https://") {
		return fmt.Errorf("config error: 'crawl_api_base' must be an http(s) URL: %s", c.CrawlAPIBase)
	}
	if c.TokenSecret != "" {
		if _, err := NewJWTConfig(c.TokenSecret, time.Duration(c.TokenTTL)); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}
	if (c.ArtifactAccessKey == "") != (c.ArtifactSecretKey == "") {
		return fmt.Errorf("config error: 'artifact_access_key' and 'artifact_secret_key' must be set together")
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// Bool fields cannot distinguish unset from false and are never merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString(&result.Host, defaults.Host)
	mergeString(&result.SeedPath, defaults.SeedPath)
	mergeString(&result.CrawlAPIBase, defaults.CrawlAPIBase)
	mergeString(&result.CrawlAPIKey, defaults.CrawlAPIKey)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.TokenSecret, defaults.TokenSecret)
	mergeString(&result.ArtifactDir, defaults.ArtifactDir)
	mergeString(&result.ArtifactBucket, defaults.ArtifactBucket)
	mergeString(&result.ArtifactEndpoint, defaults.ArtifactEndpoint)
	mergeString(&result.ArtifactRegion, defaults.ArtifactRegion)
	mergeString(&result.ArtifactAccessKey, defaults.ArtifactAccessKey)
	mergeString(&result.ArtifactSecretKey, defaults.ArtifactSecretKey)
	mergeString(&result.ArtifactPrefix, defaults.ArtifactPrefix)

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.CrawlPollInterval == 0 {
		result.CrawlPollInterval = defaults.CrawlPollInterval
	}
	if result.CrawlTimeout == 0 {
		result.CrawlTimeout = defaults.CrawlTimeout
	}
	if result.CacheTTL == 0 {
		result.CacheTTL = defaults.CacheTTL
	}
	if result.TokenTTL == 0 {
		result.TokenTTL = defaults.TokenTTL
	}

	return result
}

func mergeString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// JWT returns the crawl token configuration, or nil when no secret is configured.
func (c *Config) JWT() (*JWTConfig, error) {
	if c.TokenSecret == "" {
		return nil, nil
	}
	return NewJWTConfig(c.TokenSecret, time.Duration(c.TokenTTL))
}
