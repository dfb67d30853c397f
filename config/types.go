package config

import (
	"time"

	"github.com/karasuda/resasdl/resas"
)

// Config represents the complete configuration structure
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Retry   RetryConfig   `mapstructure:"retry"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds API host settings. The API key is never read from
// configuration; it arrives as a positional command-line argument.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// RetryConfig bounds the client's retry loop
type RetryConfig struct {
	Codes    []string      `mapstructure:"codes"`
	Interval time.Duration `mapstructure:"interval"`
	Attempts int           `mapstructure:"attempts"`
}

// FetchConfig tunes the download run
type FetchConfig struct {
	CityInterval time.Duration `mapstructure:"city_interval"`
	Filter       string        `mapstructure:"filter"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// RetryPolicy converts the retry section into the client's policy type.
func (c *Config) RetryPolicy() resas.RetryPolicy {
	return resas.RetryPolicy{
		RetriableCodes: c.Retry.Codes,
		Interval:       c.Retry.Interval,
		Attempts:       c.Retry.Attempts,
	}
}
