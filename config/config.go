package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/karasuda/resasdl/resas"
)

// Load loads the configuration from file, environment, and defaults. When no
// explicit path is given a missing config file is not an error; the defaults
// form a complete configuration on their own.
func Load(configPath string) (*Config, error) {
	// Seed the process environment from a local .env file when present.
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	// Environment overrides, e.g. RESASDL_RETRY_ATTEMPTS=5
	v.SetEnvPrefix("RESASDL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".resasdl"))
		}

		// Check /etc
		v.AddConfigPath("/etc/resasdl/")
	}

	// Read config file; only an explicitly requested file is required to exist
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.base_url", resas.DefaultBaseURL)
	v.SetDefault("api.timeout", "30s")

	// Retry defaults mirror the client's default policy
	policy := resas.DefaultRetryPolicy()
	v.SetDefault("retry.codes", policy.RetriableCodes)
	v.SetDefault("retry.interval", policy.Interval)
	v.SetDefault("retry.attempts", policy.Attempts)

	// Fetch defaults
	v.SetDefault("fetch.city_interval", "200ms")
	v.SetDefault("fetch.filter", "")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}

	if cfg.Retry.Attempts < 1 {
		return fmt.Errorf("retry.attempts must be at least 1")
	}

	if cfg.Retry.Interval <= 0 {
		return fmt.Errorf("retry.interval must be positive")
	}

	if cfg.Fetch.CityInterval < 0 {
		return fmt.Errorf("fetch.city_interval cannot be negative")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
