package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "https://opendata.resas-portal.go.jp" {
		t.Errorf("api.base_url = %q, want production host", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("api.timeout = %v, want 30s", cfg.API.Timeout)
	}
	if got := cfg.Retry.Codes; len(got) != 2 || got[0] != "500" || got[1] != "502" {
		t.Errorf("retry.codes = %v, want [500 502]", got)
	}
	if cfg.Retry.Interval != 60*time.Second {
		t.Errorf("retry.interval = %v, want 60s", cfg.Retry.Interval)
	}
	if cfg.Retry.Attempts != 3 {
		t.Errorf("retry.attempts = %d, want 3", cfg.Retry.Attempts)
	}
	if cfg.Fetch.CityInterval != 200*time.Millisecond {
		t.Errorf("fetch.city_interval = %v, want 200ms", cfg.Fetch.CityInterval)
	}
	if cfg.Fetch.Filter != "" {
		t.Errorf("fetch.filter = %q, want empty", cfg.Fetch.Filter)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "console" || !cfg.Logging.Color {
		t.Errorf("logging defaults = %+v, want info/console/color", cfg.Logging)
	}
}

func TestLoadFromFile(t *testing.T) {
	content := `api:
  timeout: 10s
retry:
  codes: ["500", "502", "503"]
  interval: 1s
  attempts: 2
fetch:
  city_interval: 50ms
  filter: 'BigCityFlag == "2"'
logging:
  level: debug
  format: json
  color: false
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("api.timeout = %v, want 10s", cfg.API.Timeout)
	}
	// Unset keys keep their defaults.
	if cfg.API.BaseURL != "https://opendata.resas-portal.go.jp" {
		t.Errorf("api.base_url = %q, want default", cfg.API.BaseURL)
	}
	if len(cfg.Retry.Codes) != 3 || cfg.Retry.Codes[2] != "503" {
		t.Errorf("retry.codes = %v, want three codes", cfg.Retry.Codes)
	}
	if cfg.Retry.Interval != time.Second || cfg.Retry.Attempts != 2 {
		t.Errorf("retry = %+v, want 1s/2", cfg.Retry)
	}
	if cfg.Fetch.CityInterval != 50*time.Millisecond {
		t.Errorf("fetch.city_interval = %v, want 50ms", cfg.Fetch.CityInterval)
	}
	if cfg.Fetch.Filter != `BigCityFlag == "2"` {
		t.Errorf("fetch.filter = %q", cfg.Fetch.Filter)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" || cfg.Logging.Color {
		t.Errorf("logging = %+v, want debug/json/no color", cfg.Logging)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() with missing explicit config should fail")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("RESASDL_RETRY_ATTEMPTS", "5")
	t.Setenv("RESASDL_RETRY_INTERVAL", "90s")
	t.Setenv("RESASDL_LOGGING_LEVEL", "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Retry.Attempts != 5 {
		t.Errorf("retry.attempts = %d, want 5 from environment", cfg.Retry.Attempts)
	}
	if cfg.Retry.Interval != 90*time.Second {
		t.Errorf("retry.interval = %v, want 90s from environment", cfg.Retry.Interval)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("logging.level = %q, want warn from environment", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:     APIConfig{BaseURL: "https://opendata.resas-portal.go.jp", Timeout: 30 * time.Second},
			Retry:   RetryConfig{Codes: []string{"500"}, Interval: time.Minute, Attempts: 3},
			Fetch:   FetchConfig{CityInterval: 200 * time.Millisecond},
			Logging: LoggingConfig{Level: "info", Format: "console", Color: true},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid configuration",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing base URL",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: true,
		},
		{
			name:    "zero attempts",
			mutate:  func(c *Config) { c.Retry.Attempts = 0 },
			wantErr: true,
		},
		{
			name:    "non-positive interval",
			mutate:  func(c *Config) { c.Retry.Interval = 0 },
			wantErr: true,
		},
		{
			name:    "negative city interval",
			mutate:  func(c *Config) { c.Fetch.CityInterval = -time.Second },
			wantErr: true,
		},
		{
			name:    "unknown logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "unknown logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryPolicyConversion(t *testing.T) {
	cfg := &Config{
		Retry: RetryConfig{Codes: []string{"500", "503"}, Interval: 5 * time.Second, Attempts: 4},
	}

	policy := cfg.RetryPolicy()
	if len(policy.RetriableCodes) != 2 || policy.RetriableCodes[1] != "503" {
		t.Errorf("RetriableCodes = %v", policy.RetriableCodes)
	}
	if policy.Interval != 5*time.Second {
		t.Errorf("Interval = %v, want 5s", policy.Interval)
	}
	if policy.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", policy.Attempts)
	}
}
