package similarity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/google/uuid"
)

const (
	defaultThreshold     = 0.7
	defaultTopK          = 5
	defaultCandidatePool = 50
)

type Config struct {
	// Threshold filters out candidates with similarity at or below it.
	Threshold float64
	// TopK is the result size when the caller does not request one.
	TopK int
	// CandidatePool bounds how many recent embedded articles are scored.
	CandidatePool int
}

func (c Config) withDefaults() Config {
	if c.Threshold <= 0 {
		c.Threshold = defaultThreshold
	}
	if c.TopK <= 0 {
		c.TopK = defaultTopK
	}
	if c.CandidatePool <= 0 {
		c.CandidatePool = defaultCandidatePool
	}
	return c
}

// Index ranks stored articles by embedding similarity against a target
// article. Pure read path: it never mutates stored data and reports "nothing
// related" as an empty result, not an error.
type Index struct {
	articles storage.ArticleStore
	cfg      Config
}

func NewIndex(articles storage.ArticleStore, cfg Config) *Index {
	return &Index{
		articles: articles,
		cfg:      cfg.withDefaults(),
	}
}

// Related returns up to k articles most similar to the target, descending by
// cosine similarity, ties kept in candidate order. Unknown targets and
// targets without an embedding yield an empty result.
func (idx *Index) Related(ctx context.Context, articleID uuid.UUID, k int) ([]domain.RelatedArticle, error) {
	if k <= 0 {
		k = idx.cfg.TopK
	}

	target, err := idx.articles.GetByID(ctx, articleID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load target article: %w", err)
	}

	if target.Embedding == nil {
		slog.Debug("target article has no embedding", "article_id", articleID)
		return nil, nil
	}

	candidates, err := idx.articles.RecentWithEmbeddings(ctx, idx.cfg.CandidatePool, articleID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate articles: %w", err)
	}

	var hits []domain.RelatedArticle
	for _, candidate := range candidates {
		score := Cosine(target.Embedding, candidate.Embedding)
		if score > idx.cfg.Threshold {
			hits = append(hits, domain.RelatedArticle{ID: candidate.ID, Score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if len(hits) > k {
		hits = hits[:k]
	}

	slog.Debug("related articles computed",
		"article_id", articleID,
		"candidates", len(candidates),
		"hits", len(hits))

	return hits, nil
}
