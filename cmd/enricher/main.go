package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/enricher"
	"github.com/DjordjeVuckovic/news-pulse/internal/inference"
	"github.com/DjordjeVuckovic/news-pulse/internal/scheduler"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/pg"
	"github.com/DjordjeVuckovic/news-pulse/internal/trending"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load enricher configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: cfg.DatabaseURL})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	inferCfg, err := inference.LoadConfigFromEnv()
	if err != nil {
		slog.Error("Failed to load inference configuration", "error", err)
		os.Exit(1)
	}
	client, err := inference.NewClientFromConfig(inferCfg)
	if err != nil {
		slog.Error("Failed to create inference client", "error", err)
		os.Exit(1)
	}

	articles := pg.NewArticleStore(pool)
	summaries := pg.NewSummaryStore(pool)
	keywords := pg.NewKeywordStore(pool)
	trendingTopics := pg.NewTrendingStore(pool)

	enr := enricher.New(articles, summaries, keywords, client, cfg.Jobs.Enrichment.Settings)
	scorer := trending.NewScorer(keywords, trendingTopics, cfg.Jobs.TrendingSettings())

	runner := scheduler.NewRunner()
	runner.Add(scheduler.Job{
		Name:     "enrichment",
		Interval: cfg.Jobs.EnrichmentInterval(),
		Run: func(ctx context.Context) error {
			_, err := enr.ProcessBatch(ctx)
			return err
		},
	})
	runner.Add(scheduler.Job{
		Name:     "trending",
		Interval: cfg.Jobs.TrendingInterval(),
		Run: func(ctx context.Context) error {
			return scorer.Recompute(ctx, time.Now())
		},
	})

	slog.Info("enricher started",
		"enrichment_interval", cfg.Jobs.EnrichmentInterval(),
		"trending_interval", cfg.Jobs.TrendingInterval())

	runner.Start(ctx)
	slog.Info("enricher stopped")
}
