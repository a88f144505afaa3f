package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type KeywordStore struct {
	db *pgxpool.Pool
}

var _ storage.KeywordStore = (*KeywordStore)(nil)

func NewKeywordStore(pool *ConnectionPool) *KeywordStore {
	return &KeywordStore{db: pool.GetConn()}
}

// ReplaceKeywords swaps the article's keyword set in one transaction so a
// concurrent reader sees either the old or the new set in full.
func (s *KeywordStore) ReplaceKeywords(ctx context.Context, articleID uuid.UUID, keywords []string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin keyword transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM keywords WHERE article_id = $1`, articleID); err != nil {
		return fmt.Errorf("failed to delete keywords: %w", err)
	}

	now := time.Now()
	for _, kw := range keywords {
		_, err := tx.Exec(ctx,
			`INSERT INTO keywords (article_id, keyword_text, created_at) VALUES ($1, $2, $3)`,
			articleID, kw, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert keyword: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit keyword transaction: %w", err)
	}
	return nil
}

func (s *KeywordStore) KeywordsByArticle(ctx context.Context, articleID uuid.UUID) ([]domain.Keyword, error) {
	cmd := `
		SELECT article_id, keyword_text, created_at
		FROM keywords
		WHERE article_id = $1
		ORDER BY keyword_text
	`
	return s.queryKeywords(ctx, cmd, articleID)
}

func (s *KeywordStore) KeywordsCreatedSince(ctx context.Context, since time.Time) ([]domain.Keyword, error) {
	cmd := `
		SELECT article_id, keyword_text, created_at
		FROM keywords
		WHERE created_at >= $1
	`
	return s.queryKeywords(ctx, cmd, since)
}

func (s *KeywordStore) queryKeywords(ctx context.Context, sql string, args ...any) ([]domain.Keyword, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query keywords: %w", err)
	}
	defer rows.Close()

	var keywords []domain.Keyword
	for rows.Next() {
		var kw domain.Keyword
		if err := rows.Scan(&kw.ArticleID, &kw.Text, &kw.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan keyword: %w", err)
		}
		keywords = append(keywords, kw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return keywords, nil
}
