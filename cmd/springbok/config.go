package main

import (
	"fmt"
	"os"
	"time"

	"github.com/ralatsdc/springbok-mgl/pkg/malegislature"
	"gopkg.in/yaml.v3"
)

// cliConfig is the optional YAML configuration file for the CLI. Every
// field has a default, so a missing file or a partial file is fine.
type cliConfig struct {
	OutputDir     string `yaml:"output_dir"`
	CacheDir      string `yaml:"cache_dir"`
	CacheTTLHours int    `yaml:"cache_ttl_hours"`
	RateLimitMS   int    `yaml:"rate_limit_ms"`
	LogLevel      string `yaml:"log_level"`

	// GeneralCourt pre-selects a court session refiner for searches when
	// the --general-court flag is not given.
	GeneralCourt string `yaml:"general_court"`
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		OutputDir:     "markup",
		CacheTTLHours: 24,
		RateLimitMS:   int(malegislature.DefaultRateLimit / time.Millisecond),
		LogLevel:      "info",
	}
}

// loadCLIConfig reads a YAML config file over the defaults. An empty
// path returns the defaults unchanged.
func loadCLIConfig(configPath string) (cliConfig, error) {
	config := defaultCLIConfig()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return config, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}
	return config, nil
}

// clientConfig builds the malegislature client configuration from the
// CLI configuration.
func (config cliConfig) clientConfig() malegislature.ClientConfig {
	clientConfig := malegislature.DefaultClientConfig()
	clientConfig.RateLimit = time.Duration(config.RateLimitMS) * time.Millisecond
	clientConfig.CacheDir = config.CacheDir
	clientConfig.CacheTTL = time.Duration(config.CacheTTLHours) * time.Hour
	return clientConfig
}
