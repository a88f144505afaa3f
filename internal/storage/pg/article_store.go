package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const articleColumns = `
	id, title, content, published_at, source_name, url, image_url,
	category, category_retry_count, embedding, summarized, keywords_extracted, created_at`

type ArticleStore struct {
	db *pgxpool.Pool
}

var _ storage.ArticleStore = (*ArticleStore)(nil)

func NewArticleStore(pool *ConnectionPool) *ArticleStore {
	return &ArticleStore{db: pool.GetConn()}
}

func (s *ArticleStore) Save(ctx context.Context, article domain.Article) (uuid.UUID, error) {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	if article.CreatedAt.IsZero() {
		article.CreatedAt = time.Now()
	}

	cmd := `
		INSERT INTO articles (id, title, content, published_at, source_name, url, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (url) DO NOTHING
		RETURNING id;
	`
	var id uuid.UUID
	err := s.db.QueryRow(
		ctx,
		cmd,
		article.ID,
		article.Title,
		article.Content,
		article.PublishedAt,
		article.SourceName,
		article.URL,
		article.ImageURL,
		article.CreatedAt,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		// Duplicate canonical URL, the existing row wins.
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert article: %w", err)
	}

	return id, nil
}

func (s *ArticleStore) SaveBulk(ctx context.Context, articles []domain.Article) error {
	rows := make([][]any, len(articles))
	now := time.Now()

	for i, a := range articles {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		if a.CreatedAt.IsZero() {
			a.CreatedAt = now
		}
		rows[i] = []any{
			a.ID,
			a.Title,
			a.Content,
			a.PublishedAt,
			a.SourceName,
			a.URL,
			a.ImageURL,
			a.CreatedAt,
		}
	}

	_, err := s.db.CopyFrom(
		ctx,
		pgx.Identifier{"articles"},
		[]string{"id", "title", "content", "published_at", "source_name", "url", "image_url", "created_at"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return fmt.Errorf("failed to bulk insert articles: %w", err)
	}
	return nil
}

func (s *ArticleStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	cmd := fmt.Sprintf(`SELECT %s FROM articles WHERE id = $1`, articleColumns)

	rows, err := s.db.Query(ctx, cmd, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query article: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, storage.ErrNotFound
	}

	return scanArticle(rows)
}

func (s *ArticleStore) List(ctx context.Context, filter storage.ListFilter) ([]domain.Article, int64, error) {
	page, size := filter.Page, filter.Size
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}

	where := "TRUE"
	args := []any{}
	argPos := 1
	if filter.Category != "" {
		where += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, string(filter.Category))
		argPos++
	}
	if filter.SourceName != "" {
		where += fmt.Sprintf(" AND source_name = $%d", argPos)
		args = append(args, filter.SourceName)
		argPos++
	}

	var count int64
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM articles WHERE %s`, where)
	if err := s.db.QueryRow(ctx, countSQL, args...).Scan(&count); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	listSQL := fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE %s
		ORDER BY published_at DESC, id DESC
		LIMIT $%d OFFSET $%d
	`, articleColumns, where, argPos, argPos+1)
	args = append(args, size, (page-1)*size)

	articles, err := s.queryArticles(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, err
	}

	return articles, count, nil
}

func (s *ArticleStore) SelectForEnrichment(ctx context.Context, limit, maxRetry int) ([]domain.Article, error) {
	cmd := fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE content <> ''
		  AND (
			summarized = FALSE
			OR keywords_extracted = FALSE
			OR category IS NULL
			OR (category = $1 AND category_retry_count < $2)
			OR embedding IS NULL
		  )
		ORDER BY published_at DESC
		LIMIT $3
	`, articleColumns)

	return s.queryArticles(ctx, cmd, string(domain.CategoryOther), maxRetry, limit)
}

func (s *ArticleStore) UpdateEnrichment(ctx context.Context, id uuid.UUID, update domain.EnrichmentUpdate) error {
	if update.Empty() {
		return nil
	}

	set := ""
	args := []any{id}
	argPos := 2

	appendSet := func(column string, value any) {
		if set != "" {
			set += ", "
		}
		set += fmt.Sprintf("%s = $%d", column, argPos)
		args = append(args, value)
		argPos++
	}

	if update.Summarized != nil {
		appendSet("summarized", *update.Summarized)
	}
	if update.KeywordsExtracted != nil {
		appendSet("keywords_extracted", *update.KeywordsExtracted)
	}
	if update.Category != nil {
		appendSet("category", string(*update.Category))
	}
	if update.CategoryRetryCount != nil {
		appendSet("category_retry_count", *update.CategoryRetryCount)
	}
	if update.Embedding != nil {
		appendSet("embedding", pgvector.NewVector(update.Embedding))
	}

	cmd := fmt.Sprintf(`UPDATE articles SET %s WHERE id = $1`, set)
	tag, err := s.db.Exec(ctx, cmd, args...)
	if err != nil {
		return fmt.Errorf("failed to update article enrichment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *ArticleStore) RecentWithEmbeddings(ctx context.Context, limit int, exclude uuid.UUID) ([]domain.Article, error) {
	cmd := fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE embedding IS NOT NULL AND id <> $1
		ORDER BY published_at DESC
		LIMIT $2
	`, articleColumns)

	return s.queryArticles(ctx, cmd, exclude, limit)
}

func (s *ArticleStore) MissingEmbedding(ctx context.Context, limit int) ([]domain.Article, error) {
	cmd := fmt.Sprintf(`
		SELECT %s FROM articles
		WHERE embedding IS NULL AND content <> ''
		ORDER BY published_at DESC
		LIMIT $1
	`, articleColumns)

	return s.queryArticles(ctx, cmd, limit)
}

func (s *ArticleStore) queryArticles(ctx context.Context, sql string, args ...any) ([]domain.Article, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return articles, nil
}

func scanArticle(rows pgx.Rows) (*domain.Article, error) {
	var article domain.Article
	var publishedAt, createdAt *time.Time
	var sourceName, imageURL, category *string
	var embedding *pgvector.Vector

	if err := rows.Scan(
		&article.ID,
		&article.Title,
		&article.Content,
		&publishedAt,
		&sourceName,
		&article.URL,
		&imageURL,
		&category,
		&article.CategoryRetryCount,
		&embedding,
		&article.Summarized,
		&article.KeywordsExtracted,
		&createdAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}

	if publishedAt != nil {
		article.PublishedAt = *publishedAt
	}
	if createdAt != nil {
		article.CreatedAt = *createdAt
	}
	if sourceName != nil {
		article.SourceName = *sourceName
	}
	if imageURL != nil {
		article.ImageURL = *imageURL
	}
	if category != nil {
		article.Category = domain.Category(*category)
	}
	if embedding != nil {
		article.Embedding = embedding.Slice()
	}

	return &article, nil
}
