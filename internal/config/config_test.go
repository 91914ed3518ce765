package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, `{
		"port": 8080,
		"seed_path": "data/resume.json",
		"crawl_api_base": "http://localhost:3002",
		"crawl_poll_interval": "500ms",
		"crawl_timeout": 30,
		"use_browser": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "data/resume.json", cfg.SeedPath)
	assert.Equal(t, "http://localhost:3002", cfg.CrawlAPIBase)
	assert.Equal(t, Duration(500*time.Millisecond), cfg.CrawlPollInterval)
	assert.Equal(t, Duration(30*time.Second), cfg.CrawlTimeout)
	assert.True(t, cfg.UseBrowser)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "config path is empty")

	_, err = LoadConfig("/nonexistent/path/config.json")
	assert.ErrorContains(t, err, "failed to read config file")

	_, err = LoadConfig(writeConfig(t, `{ invalid json }`))
	assert.ErrorContains(t, err, "failed to parse config JSON")

	_, err = LoadConfig(writeConfig(t, `{"crawl_timeout": "soon"}`))
	assert.ErrorContains(t, err, "invalid duration")
}

func TestDuration_JSON(t *testing.T) {
	var d Duration
	require.NoError(t, json.Unmarshal([]byte(`"1.5s"`), &d))
	assert.Equal(t, Duration(1500*time.Millisecond), d)

	require.NoError(t, json.Unmarshal([]byte(`2.5`), &d))
	assert.Equal(t, Duration(2500*time.Millisecond), d)

	assert.Error(t, json.Unmarshal([]byte(`true`), &d))

	out, err := json.Marshal(Duration(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, `"1m0s"`, string(out))
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9000, CrawlAPIKey: "key"}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "key", merged.CrawlAPIKey)
	assert.Equal(t, DefaultHost, merged.Host)
	assert.Equal(t, DefaultSeedPath, merged.SeedPath)
	assert.Equal(t, DefaultCrawlAPIBase, merged.CrawlAPIBase)
	assert.Equal(t, Duration(DefaultCrawlPollInterval), merged.CrawlPollInterval)
	assert.Equal(t, Duration(DefaultCrawlTimeout), merged.CrawlTimeout)
	assert.Equal(t, Duration(DefaultCacheTTL), merged.CacheTTL)
	assert.Equal(t, DefaultArtifactPrefix, merged.ArtifactPrefix)

	assert.Equal(t, 9000, cfg.Port, "original is not modified")
	assert.Empty(t, cfg.Host)
}

func TestValidate(t *testing.T) {
	valid := Defaults()
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"port range", func(c *Config) { c.Port = 70000 }, "'port'"},
		{"negative interval", func(c *Config) { c.CrawlPollInterval = -1 }, "'crawl_poll_interval' must be positive"},
		{"negative timeout", func(c *Config) { c.CrawlTimeout = -1 }, "'crawl_timeout' must be positive"},
		{"interval not shorter than timeout", func(c *Config) {
			c.CrawlPollInterval = Duration(time.Minute)
			c.CrawlTimeout = Duration(time.Minute)
		}, "must be shorter than"},
		{"api base scheme", func(c *Config) { c.CrawlAPIBase = "ftp://host" }, "'crawl_api_base'"},
		{"short token secret", func(c *Config) { c.TokenSecret = "short" }, "token secret"},
		{"half artifact keys", func(c *Config) { c.ArtifactAccessKey = "ak" }, "must be set together"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvPort, "4000")
	t.Setenv(EnvHost, "127.0.0.1")
	t.Setenv(EnvCrawlTimeout, "90s")
	t.Setenv(EnvCrawlPollInterval, "not-a-duration")
	t.Setenv(EnvUseBrowser, "true")
	t.Setenv(EnvDatabaseURL, "postgres://localhost/test")
	t.Setenv(EnvArtifactBucket, "bucket")

	cfg := Config{Port: 1234, CrawlPollInterval: Duration(time.Second)}
	cfg.ApplyEnv()

	assert.Equal(t, 4000, cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, Duration(90*time.Second), cfg.CrawlTimeout)
	assert.Equal(t, Duration(time.Second), cfg.CrawlPollInterval, "malformed values are ignored")
	assert.True(t, cfg.UseBrowser)
	assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
	assert.Equal(t, "bucket", cfg.ArtifactBucket)
	assert.Equal(t, "127.0.0.1:4000", cfg.Addr())
}

func TestLoad_FileEnvDefaults(t *testing.T) {
	path := writeConfig(t, `{"port": 8080, "crawl_api_key": "from-file", "seed_path": "file.json"}`)
	t.Setenv(EnvCrawlAPIKey, "from-env")
	t.Setenv(EnvPort, "")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "from-env", cfg.CrawlAPIKey, "environment wins over the file")
	assert.Equal(t, "file.json", cfg.SeedPath)
	assert.Equal(t, DefaultHost, cfg.Host)
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvPort, "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv(EnvCrawlPollInterval, "2m")
	t.Setenv(EnvCrawlTimeout, "1m")

	_, err := Load("")
	assert.ErrorContains(t, err, "must be shorter than")
}

func TestConfig_JWT(t *testing.T) {
	cfg := Defaults()
	jwtCfg, err := cfg.JWT()
	require.NoError(t, err)
	assert.Nil(t, jwtCfg)

	cfg.TokenSecret = "0123456789abcdef0123"
	cfg.TokenTTL = Duration(time.Hour)
	jwtCfg, err = cfg.JWT()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, jwtCfg.Expiration)
}
