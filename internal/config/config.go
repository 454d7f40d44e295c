// Package config
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
}

type APIConfig struct {
	BaseURL   string `yaml:"base_url"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

type CacheConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	FilePath string `yaml:"file_path"`
}

// Load reads configuration from file and applies environment variable overrides.
// A missing config file is not an error; defaults apply.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Default returns the built-in configuration values
func Default() *Config {
	stateDir := defaultStateDir()
	return &Config{
		API: APIConfig{
			BaseURL:   "http://localhost:8000",
			TimeoutMS: 5000,
		},
		Cache: CacheConfig{
			Path: filepath.Join(stateDir, "netdash.db"),
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "text",
			FilePath: filepath.Join(stateDir, "netdash.log"),
		},
	}
}

// Validate ensures all required configuration values are set
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api base_url is required")
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("api base_url must be an http or https URL")
	}
	if c.API.TimeoutMS <= 0 {
		return fmt.Errorf("api timeout_ms must be positive")
	}
	if c.Cache.Path == "" {
		return fmt.Errorf("cache path is required")
	}
	if !c.Logging.IsLogLevelValid() {
		return fmt.Errorf("logging level must be one of debug, info, warn, error")
	}

	return nil
}

// applyEnvOverrides checks for environment variables with NETDASH_ prefix
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NETDASH_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("NETDASH_API_TIMEOUT_MS"); v != "" {
		fmt.Sscanf(v, "%d", &cfg.API.TimeoutMS)
	}
	if v := os.Getenv("NETDASH_CACHE_PATH"); v != "" {
		cfg.Cache.Path = v
	}
	if v := os.Getenv("NETDASH_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("NETDASH_LOG_FILE"); v != "" {
		cfg.Logging.FilePath = v
	}
}

// GetTimeout returns the API request timeout as a duration
func (a *APIConfig) GetTimeout() time.Duration {
	return time.Duration(a.TimeoutMS) * time.Millisecond
}

// IsLogLevelValid checks if the log level is valid
func (l *LoggingConfig) IsLogLevelValid() bool {
	validLevels := []string{"debug", "info", "warn", "error"}
	return slices.Contains(validLevels, strings.ToLower(l.Level))
}

func defaultStateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "netdash")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "state", "netdash")
}
