package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type NewsApiConfig struct {
	DatabaseURL string
}

func (as *AppConfig) Load() (*NewsApiConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/news_api/.env")
	if err != nil {
		slog.Info("Failed to load .env file, continuing with existing environment variables", "error", err)
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable not set")
	}

	return &NewsApiConfig{
		DatabaseURL: connStr,
	}, nil
}
