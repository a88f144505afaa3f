package enricher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/inference"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
)

// Enricher drives articles toward a fully enriched state: summary, keywords,
// category and embedding, each attempted independently per cycle. Inference
// failures are contained; a failed field is simply retried on a later cycle,
// except classification which consumes its bounded retry budget on every
// attempt.
type Enricher struct {
	articles  storage.ArticleStore
	summaries storage.SummaryStore
	keywords  storage.KeywordStore
	client    inference.Client
	cfg       Config
}

func New(
	articles storage.ArticleStore,
	summaries storage.SummaryStore,
	keywords storage.KeywordStore,
	client inference.Client,
	cfg Config,
) *Enricher {
	return &Enricher{
		articles:  articles,
		summaries: summaries,
		keywords:  keywords,
		client:    client,
		cfg:       cfg.withDefaults(),
	}
}

// ProcessBatch selects one batch of eligible articles, newest published
// first, and runs the per-field enrichment over each sequentially. It returns
// the number of articles that received at least one committed update.
func (e *Enricher) ProcessBatch(ctx context.Context) (int, error) {
	batch, err := e.articles.SelectForEnrichment(ctx, e.cfg.BatchSize, e.cfg.MaxCategoryRetries)
	if err != nil {
		return 0, fmt.Errorf("failed to select articles for enrichment: %w", err)
	}

	if len(batch) == 0 {
		slog.Debug("no articles need enrichment")
		return 0, nil
	}

	slog.Info("enrichment cycle started", "batch_size", len(batch))

	processed := 0
	for i := range batch {
		if ctx.Err() != nil {
			return processed, ctx.Err()
		}
		if e.enrichOne(ctx, &batch[i]) {
			processed++
		}
	}

	slog.Info("enrichment cycle finished", "processed", processed)
	return processed, nil
}

// enrichOne attempts every missing field of a single article. Field failures
// never abort the remaining fields; all resulting flag/field changes are
// committed in one article write.
func (e *Enricher) enrichOne(ctx context.Context, article *domain.Article) bool {
	log := slog.With("article_id", article.ID)
	update := domain.EnrichmentUpdate{}

	if !article.Summarized {
		e.trySummarize(ctx, article, &update, log)
	}
	if !article.KeywordsExtracted {
		e.tryExtractKeywords(ctx, article, &update, log)
	}
	if !article.CategoryResolved(e.cfg.MaxCategoryRetries) {
		e.tryClassify(ctx, article, &update, log)
	}
	if article.Embedding == nil {
		e.tryEmbed(ctx, article, &update, log)
	}

	if update.Empty() {
		log.Debug("no enrichment progress this cycle")
		return false
	}

	if err := e.articles.UpdateEnrichment(ctx, article.ID, update); err != nil {
		// Progress for this cycle is lost; prior committed state is intact
		// and the article stays eligible.
		log.Error("failed to commit enrichment update", "error", err)
		return false
	}

	log.Info("article enrichment committed", "state", previewState(article, update, e.cfg.MaxCategoryRetries))
	return true
}

func (e *Enricher) trySummarize(ctx context.Context, article *domain.Article, update *domain.EnrichmentUpdate, log *slog.Logger) {
	summary, err := e.client.Summarize(ctx, article.Content)
	if errors.Is(err, inference.ErrInputTooShort) {
		log.Info("content too short to summarize, skipping")
		return
	}
	if err != nil {
		log.Error("summarize call failed", "error", err)
		return
	}
	if summary == "" {
		log.Warn("summarizer returned empty result")
		return
	}

	if err := e.summaries.UpsertSummary(ctx, article.ID, summary); err != nil {
		log.Error("failed to upsert summary", "error", err)
		return
	}
	done := true
	update.Summarized = &done
}

func (e *Enricher) tryExtractKeywords(ctx context.Context, article *domain.Article, update *domain.EnrichmentUpdate, log *slog.Logger) {
	keywords, err := e.client.ExtractKeywords(ctx, article.Content)
	if errors.Is(err, inference.ErrInputTooShort) {
		log.Info("content too short for keyword extraction, skipping")
		return
	}
	if err != nil {
		log.Error("keyword extraction call failed", "error", err)
		return
	}
	if len(keywords) == 0 {
		log.Warn("keyword extractor returned empty result")
		return
	}

	if err := e.keywords.ReplaceKeywords(ctx, article.ID, keywords); err != nil {
		log.Error("failed to replace keywords", "error", err)
		return
	}
	done := true
	update.KeywordsExtracted = &done
}

// tryClassify always consumes one unit of the retry budget per attempt and
// always writes the returned category, fallback included. Only content
// rejected before the provider call leaves the budget untouched.
func (e *Enricher) tryClassify(ctx context.Context, article *domain.Article, update *domain.EnrichmentUpdate, log *slog.Logger) {
	category, err := e.client.Classify(ctx, article.Content)
	if errors.Is(err, inference.ErrInputTooShort) {
		log.Info("content too short to classify, skipping")
		return
	}
	if err != nil {
		log.Error("classify call failed, recording fallback", "error", err)
		category = domain.CategoryOther
	}

	retries := article.CategoryRetryCount + 1
	update.Category = &category
	update.CategoryRetryCount = &retries
}

func (e *Enricher) tryEmbed(ctx context.Context, article *domain.Article, update *domain.EnrichmentUpdate, log *slog.Logger) {
	vector, err := e.client.Embed(ctx, inference.EmbedInput(article.Title, article.Content))
	if errors.Is(err, inference.ErrInputTooShort) {
		log.Info("content too short to embed, skipping")
		return
	}
	if err != nil {
		log.Error("embed call failed", "error", err)
		return
	}
	if len(vector) == 0 {
		log.Warn("embedder returned empty vector")
		return
	}

	update.Embedding = vector
}

func previewState(article *domain.Article, update domain.EnrichmentUpdate, maxRetry int) domain.EnrichmentState {
	preview := *article
	if update.Summarized != nil {
		preview.Summarized = *update.Summarized
	}
	if update.KeywordsExtracted != nil {
		preview.KeywordsExtracted = *update.KeywordsExtracted
	}
	if update.Category != nil {
		preview.Category = *update.Category
	}
	if update.CategoryRetryCount != nil {
		preview.CategoryRetryCount = *update.CategoryRetryCount
	}
	if update.Embedding != nil {
		preview.Embedding = update.Embedding
	}
	return preview.State(maxRetry)
}
