package in_mem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/google/uuid"
)

// Store is a mutex-guarded in-memory implementation of all storage
// interfaces, used by unit tests and dependency-free runs.
type Store struct {
	mu       sync.RWMutex
	articles map[uuid.UUID]domain.Article
	summary  map[uuid.UUID]string
	keywords map[uuid.UUID][]domain.Keyword
	trending []domain.TrendingTopic
}

var (
	_ storage.ArticleStore  = (*Store)(nil)
	_ storage.SummaryStore  = (*Store)(nil)
	_ storage.KeywordStore  = (*Store)(nil)
	_ storage.TrendingStore = (*Store)(nil)
)

func NewStore() *Store {
	return &Store{
		articles: make(map[uuid.UUID]domain.Article),
		summary:  make(map[uuid.UUID]string),
		keywords: make(map[uuid.UUID][]domain.Keyword),
	}
}

func (s *Store) Save(ctx context.Context, article domain.Article) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.articles {
		if existing.URL == article.URL {
			return uuid.Nil, nil
		}
	}
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}
	s.articles[article.ID] = article
	return article.ID, nil
}

func (s *Store) SaveBulk(ctx context.Context, articles []domain.Article) error {
	for _, article := range articles {
		if _, err := s.Save(ctx, article); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	article, ok := s.articles[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &article, nil
}

func (s *Store) List(ctx context.Context, filter storage.ListFilter) ([]domain.Article, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Article
	for _, article := range s.articles {
		if filter.Category != "" && article.Category != filter.Category {
			continue
		}
		if filter.SourceName != "" && article.SourceName != filter.SourceName {
			continue
		}
		matched = append(matched, article)
	}
	sortByPublishedDesc(matched)

	page, size := filter.Page, filter.Size
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	total := int64(len(matched))
	start := (page - 1) * size
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (s *Store) SelectForEnrichment(ctx context.Context, limit, maxRetry int) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var eligible []domain.Article
	for _, article := range s.articles {
		if article.NeedsEnrichment(maxRetry) {
			eligible = append(eligible, article)
		}
	}
	sortByPublishedDesc(eligible)

	if len(eligible) > limit {
		eligible = eligible[:limit]
	}
	return eligible, nil
}

func (s *Store) UpdateEnrichment(ctx context.Context, id uuid.UUID, update domain.EnrichmentUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	article, ok := s.articles[id]
	if !ok {
		return storage.ErrNotFound
	}

	if update.Summarized != nil {
		article.Summarized = *update.Summarized
	}
	if update.KeywordsExtracted != nil {
		article.KeywordsExtracted = *update.KeywordsExtracted
	}
	if update.Category != nil {
		article.Category = *update.Category
	}
	if update.CategoryRetryCount != nil {
		article.CategoryRetryCount = *update.CategoryRetryCount
	}
	if update.Embedding != nil {
		article.Embedding = update.Embedding
	}

	s.articles[id] = article
	return nil
}

func (s *Store) RecentWithEmbeddings(ctx context.Context, limit int, exclude uuid.UUID) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var candidates []domain.Article
	for _, article := range s.articles {
		if article.Embedding == nil || article.ID == exclude {
			continue
		}
		candidates = append(candidates, article)
	}
	sortByPublishedDesc(candidates)

	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

func (s *Store) MissingEmbedding(ctx context.Context, limit int) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var missing []domain.Article
	for _, article := range s.articles {
		if article.Embedding == nil && article.Content != "" {
			missing = append(missing, article)
		}
	}
	sortByPublishedDesc(missing)

	if len(missing) > limit {
		missing = missing[:limit]
	}
	return missing, nil
}

func (s *Store) UpsertSummary(ctx context.Context, articleID uuid.UUID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summary[articleID] = text
	return nil
}

func (s *Store) SummaryByArticle(ctx context.Context, articleID uuid.UUID) (*domain.Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	text, ok := s.summary[articleID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &domain.Summary{ArticleID: articleID, Text: text}, nil
}

func (s *Store) ReplaceKeywords(ctx context.Context, articleID uuid.UUID, keywords []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	replacement := make([]domain.Keyword, 0, len(keywords))
	for _, kw := range keywords {
		replacement = append(replacement, domain.Keyword{
			ArticleID: articleID,
			Text:      kw,
			CreatedAt: now,
		})
	}
	s.keywords[articleID] = replacement
	return nil
}

func (s *Store) KeywordsByArticle(ctx context.Context, articleID uuid.UUID) ([]domain.Keyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Keyword(nil), s.keywords[articleID]...), nil
}

func (s *Store) KeywordsCreatedSince(ctx context.Context, since time.Time) ([]domain.Keyword, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recent []domain.Keyword
	for _, kws := range s.keywords {
		for _, kw := range kws {
			if !kw.CreatedAt.Before(since) {
				recent = append(recent, kw)
			}
		}
	}
	return recent, nil
}

// SeedKeyword inserts a keyword with an explicit creation time, for tests.
func (s *Store) SeedKeyword(articleID uuid.UUID, text string, createdAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keywords[articleID] = append(s.keywords[articleID], domain.Keyword{
		ArticleID: articleID,
		Text:      text,
		CreatedAt: createdAt,
	})
}

func (s *Store) ReplaceTrending(ctx context.Context, topics []domain.TrendingTopic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trending = append([]domain.TrendingTopic(nil), topics...)
	return nil
}

func (s *Store) ListTrending(ctx context.Context, limit int) ([]domain.TrendingTopic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topics := append([]domain.TrendingTopic(nil), s.trending...)
	sort.SliceStable(topics, func(i, j int) bool {
		return topics[i].Rank < topics[j].Rank
	})
	if len(topics) > limit {
		topics = topics[:limit]
	}
	return topics, nil
}

func sortByPublishedDesc(articles []domain.Article) {
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})
}
