package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"PriceScout/internal/model"
	"PriceScout/internal/scraper"
)

// Config holds all application configuration.
type Config struct {
	Fetch struct {
		TimeoutSeconds int    `yaml:"timeout_seconds"`
		UserAgent      string `yaml:"user_agent"`
		AcceptLanguage string `yaml:"accept_language"`
		PaceMillis     int    `yaml:"pace_millis"`
		Workers        int    `yaml:"workers"`
	} `yaml:"fetch"`
	Extract struct {
		UnitWindow      int   `yaml:"unit_window"`
		AgorotThreshold int64 `yaml:"agorot_threshold"`
	} `yaml:"extract"`
	// Sources overrides the built-in registry. Order is significant:
	// the first source to yield a price wins.
	Sources  []model.Source `yaml:"sources"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Fetch.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("USER_AGENT"); v != "" {
		cfg.Fetch.UserAgent = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Fetch.TimeoutSeconds == 0 {
		cfg.Fetch.TimeoutSeconds = 12
	}
	if cfg.Fetch.UserAgent == "" {
		cfg.Fetch.UserAgent = "Mozilla/5.0"
	}
	if cfg.Fetch.AcceptLanguage == "" {
		cfg.Fetch.AcceptLanguage = "he-IL,he;q=0.9,en-US;q=0.8,en;q=0.7"
	}
	if cfg.Fetch.PaceMillis == 0 {
		cfg.Fetch.PaceMillis = 600
	}
	if cfg.Fetch.Workers == 0 {
		cfg.Fetch.Workers = 4
	}
	if cfg.Extract.UnitWindow == 0 {
		cfg.Extract.UnitWindow = 250
	}
	if cfg.Extract.AgorotThreshold == 0 {
		cfg.Extract.AgorotThreshold = 10000
	}
	if len(cfg.Sources) == 0 {
		cfg.Sources = scraper.DefaultSources()
	}
	if cfg.Schedule.RefreshCron == "" {
		// TASE trades Sunday through Thursday; refresh after the close.
		cfg.Schedule.RefreshCron = "0 0 18 * * 0-4"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/prices.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are coherent.
func (c *Config) Validate() error {
	if c.Fetch.TimeoutSeconds <= 0 {
		return fmt.Errorf("fetch.timeout_seconds must be positive")
	}
	if c.Fetch.Workers <= 0 {
		return fmt.Errorf("fetch.workers must be positive")
	}
	if c.Extract.UnitWindow < 0 {
		return fmt.Errorf("extract.unit_window must not be negative")
	}
	if c.Extract.AgorotThreshold <= 0 {
		return fmt.Errorf("extract.agorot_threshold must be positive")
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("sources must not be empty")
	}
	for i, src := range c.Sources {
		if src.Name == "" {
			return fmt.Errorf("sources[%d]: name is required", i)
		}
		if !strings.Contains(src.URL, "{code}") && !strings.Contains(src.URL, "{code8}") {
			return fmt.Errorf("sources[%d] (%s): url must contain {code} or {code8}", i, src.Name)
		}
	}
	return nil
}
