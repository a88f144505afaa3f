package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/inference"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/pg"
	"github.com/DjordjeVuckovic/news-pulse/pkg/config/env"
)

// One-shot backfill of article embeddings. Walks every article without a
// stored vector in batches and embeds each through the paced client, so the
// provider rate limit holds even over a large backlog.
func main() {
	slog.SetLogLoggerLevel(slog.LevelInfo)

	batchSize := flag.Int("batch", 50, "Articles fetched per round")
	maxArticles := flag.Int("max", 0, "Stop after embedding this many articles (0 = no limit)")
	flag.Parse()

	if err := run(*batchSize, *maxArticles); err != nil {
		slog.Error("Backfill failed", "error", err)
		os.Exit(1)
	}
}

func run(batchSize, maxArticles int) error {
	err := env.LoadDotEnv(os.Getenv("ENV"), "cmd/vector_backfill/.env")
	if err != nil {
		slog.Info("Failed to load .env file, continuing with existing environment variables", "error", err)
	}

	connStr := os.Getenv("DATABASE_URL")
	if connStr == "" {
		return fmt.Errorf("DATABASE_URL environment variable not set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pg.NewConnectionPool(ctx, pg.PoolConfig{ConnStr: connStr})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	inferCfg, err := inference.LoadConfigFromEnv()
	if err != nil {
		return err
	}
	client, err := inference.NewClientFromConfig(inferCfg)
	if err != nil {
		return err
	}

	articles := pg.NewArticleStore(pool)

	embedded, failed := 0, 0
	for {
		batch, err := articles.MissingEmbedding(ctx, batchSize)
		if err != nil {
			return fmt.Errorf("failed to load articles without embeddings: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		progress := false
		for _, article := range batch {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if maxArticles > 0 && embedded >= maxArticles {
				slog.Info("article limit reached", "embedded", embedded)
				return nil
			}

			vector, err := client.Embed(ctx, inference.EmbedInput(article.Title, article.Content))
			if err != nil {
				if errors.Is(err, inference.ErrInputTooShort) {
					slog.Warn("article too short to embed, skipping", "article_id", article.ID)
				} else {
					slog.Error("embed call failed", "article_id", article.ID, "error", err)
				}
				failed++
				continue
			}

			update := domain.EnrichmentUpdate{Embedding: vector}
			if err := articles.UpdateEnrichment(ctx, article.ID, update); err != nil {
				slog.Error("failed to store embedding", "article_id", article.ID, "error", err)
				failed++
				continue
			}

			embedded++
			progress = true
			if embedded%10 == 0 {
				slog.Info("backfill progress", "embedded", embedded, "failed", failed)
			}
		}

		// Every article in the batch failed or was skipped; the next fetch
		// would return the same rows forever.
		if !progress {
			slog.Warn("no progress in this round, stopping", "remaining_failed", len(batch))
			break
		}
	}

	slog.Info("backfill finished", "embedded", embedded, "failed", failed)
	return nil
}
