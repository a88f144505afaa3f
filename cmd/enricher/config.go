package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/enricher"
	"github.com/DjordjeVuckovic/news-pulse/internal/trending"
	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
	"gopkg.in/yaml.v3"
)

const (
	defaultJobsPath        = "cmd/enricher/jobs.yaml"
	defaultEnrichmentEvery = time.Minute
	defaultTrendingEvery   = 10 * time.Minute
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type EnricherConfig struct {
	DatabaseURL string
	Jobs        JobsConfig
}

// JobsConfig is the YAML-backed schedule and tuning of the two batch jobs.
// Intervals are duration strings ("1m", "10m").
type JobsConfig struct {
	Enrichment struct {
		Interval string          `yaml:"interval"`
		Settings enricher.Config `yaml:"settings"`
	} `yaml:"enrichment"`
	Trending struct {
		Interval string `yaml:"interval"`
		Settings struct {
			Lookback  string  `yaml:"lookback"`
			DecayRate float64 `yaml:"decayRate"`
			TopN      int     `yaml:"topN"`
		} `yaml:"settings"`
	} `yaml:"trending"`
}

func (as *AppConfig) Load() (*EnricherConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/enricher/.env")
	if err != nil {
		slog.Info("Failed to load .env file, continuing with existing environment variables", "error", err)
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	jobs, err := loadJobsConfig()
	if err != nil {
		return nil, err
	}

	return &EnricherConfig{
		DatabaseURL: connStr,
		Jobs:        *jobs,
	}, nil
}

func loadJobsConfig() (*JobsConfig, error) {
	path := os.Getenv("JOBS_CONFIG_PATH")
	if path == "" {
		path = defaultJobsPath
	}

	var cfg JobsConfig
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		slog.Info("jobs config file not found, using defaults", "path", path)
	case err != nil:
		return nil, fmt.Errorf("read jobs config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse jobs config YAML: %w", err)
		}
	}

	return &cfg, nil
}

func (c JobsConfig) EnrichmentInterval() time.Duration {
	return parseInterval(c.Enrichment.Interval, defaultEnrichmentEvery)
}

func (c JobsConfig) TrendingInterval() time.Duration {
	return parseInterval(c.Trending.Interval, defaultTrendingEvery)
}

// TrendingSettings maps the YAML scalars into the scorer config. Zero values
// fall through to the scorer's own defaults.
func (c JobsConfig) TrendingSettings() trending.Config {
	return trending.Config{
		Lookback:  parseInterval(c.Trending.Settings.Lookback, 0),
		DecayRate: c.Trending.Settings.DecayRate,
		TopN:      c.Trending.Settings.TopN,
	}
}

func parseInterval(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid job interval, using default", "interval", raw, "default", fallback)
		return fallback
	}
	return d
}
