package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SummaryStore struct {
	db *pgxpool.Pool
}

var _ storage.SummaryStore = (*SummaryStore)(nil)

func NewSummaryStore(pool *ConnectionPool) *SummaryStore {
	return &SummaryStore{db: pool.GetConn()}
}

func (s *SummaryStore) UpsertSummary(ctx context.Context, articleID uuid.UUID, text string) error {
	cmd := `
		INSERT INTO summaries (article_id, summary_text)
		VALUES ($1, $2)
		ON CONFLICT (article_id) DO UPDATE
		SET summary_text = EXCLUDED.summary_text
	`
	if _, err := s.db.Exec(ctx, cmd, articleID, text); err != nil {
		return fmt.Errorf("failed to upsert summary: %w", err)
	}
	return nil
}

func (s *SummaryStore) SummaryByArticle(ctx context.Context, articleID uuid.UUID) (*domain.Summary, error) {
	cmd := `SELECT article_id, summary_text FROM summaries WHERE article_id = $1`

	var summary domain.Summary
	err := s.db.QueryRow(ctx, cmd, articleID).Scan(&summary.ArticleID, &summary.Text)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query summary: %w", err)
	}

	return &summary, nil
}
