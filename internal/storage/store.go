package storage

import (
	"context"
	"errors"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("storage: not found")

// ListFilter narrows the article listing.
type ListFilter struct {
	Category   domain.Category
	SourceName string
	Page       int
	Size       int
}

// ArticleStore is the persistence boundary for articles and their enrichment
// state. SelectForEnrichment applies the eligibility predicate ordered by
// most-recently-published first; UpdateEnrichment commits one cycle's field
// changes in a single write.
type ArticleStore interface {
	Save(ctx context.Context, article domain.Article) (uuid.UUID, error)
	SaveBulk(ctx context.Context, articles []domain.Article) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	List(ctx context.Context, filter ListFilter) ([]domain.Article, int64, error)
	SelectForEnrichment(ctx context.Context, limit, maxRetry int) ([]domain.Article, error)
	UpdateEnrichment(ctx context.Context, id uuid.UUID, update domain.EnrichmentUpdate) error
	RecentWithEmbeddings(ctx context.Context, limit int, exclude uuid.UUID) ([]domain.Article, error)
	MissingEmbedding(ctx context.Context, limit int) ([]domain.Article, error)
}

type SummaryStore interface {
	UpsertSummary(ctx context.Context, articleID uuid.UUID, text string) error
	SummaryByArticle(ctx context.Context, articleID uuid.UUID) (*domain.Summary, error)
}

// KeywordStore replaces an article's keyword set atomically: either the full
// new set is visible or the full old set remains.
type KeywordStore interface {
	ReplaceKeywords(ctx context.Context, articleID uuid.UUID, keywords []string) error
	KeywordsByArticle(ctx context.Context, articleID uuid.UUID) ([]domain.Keyword, error)
	KeywordsCreatedSince(ctx context.Context, since time.Time) ([]domain.Keyword, error)
}

// TrendingStore holds exactly one snapshot generation. ReplaceTrending
// installs a new ranking transactionally so readers never observe a mixed
// state.
type TrendingStore interface {
	ReplaceTrending(ctx context.Context, topics []domain.TrendingTopic) error
	ListTrending(ctx context.Context, limit int) ([]domain.TrendingTopic, error)
}
