package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/news-pulse/internal/api"
	"github.com/DjordjeVuckovic/news-pulse/internal/server"
	"github.com/DjordjeVuckovic/news-pulse/internal/similarity"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/pg"
	pkgserver "github.com/DjordjeVuckovic/news-pulse/pkg/server"
	"github.com/labstack/echo/v4"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	pool, err := pg.NewConnectionPool(context.Background(), pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	articles := pg.NewArticleStore(pool)
	summaries := pg.NewSummaryStore(pool)
	keywords := pg.NewKeywordStore(pool)
	trendingTopics := pg.NewTrendingStore(pool)
	index := similarity.NewIndex(articles, similarity.Config{})

	s := server.New(sCfg, pkgserver.NewPingHealthChecker(pool.Ping))
	s.Echo.GET("/", func(c echo.Context) error {
		return c.String(200, "News Pulse API is running")
	})

	newsRouter := api.NewNewsRouter(s.Echo, articles, summaries, keywords, trendingTopics, index)
	newsRouter.Bind()

	if err := s.Start(); err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
