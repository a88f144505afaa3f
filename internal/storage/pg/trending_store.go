package pg

import (
	"context"
	"fmt"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TrendingStore struct {
	db *pgxpool.Pool
}

var _ storage.TrendingStore = (*TrendingStore)(nil)

func NewTrendingStore(pool *ConnectionPool) *TrendingStore {
	return &TrendingStore{db: pool.GetConn()}
}

// ReplaceTrending installs a new snapshot with delete-all plus bulk insert
// inside one transaction. Readers never observe a partially replaced ranking.
func (s *TrendingStore) ReplaceTrending(ctx context.Context, topics []domain.TrendingTopic) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin trending transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM trending_topics`); err != nil {
		return fmt.Errorf("failed to clear trending topics: %w", err)
	}

	for _, topic := range topics {
		_, err := tx.Exec(ctx,
			`INSERT INTO trending_topics (topic, rank, score) VALUES ($1, $2, $3)`,
			topic.Topic, topic.Rank, topic.Score,
		)
		if err != nil {
			return fmt.Errorf("failed to insert trending topic: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit trending transaction: %w", err)
	}
	return nil
}

func (s *TrendingStore) ListTrending(ctx context.Context, limit int) ([]domain.TrendingTopic, error) {
	cmd := `
		SELECT topic, rank, score
		FROM trending_topics
		ORDER BY rank ASC
		LIMIT $1
	`
	rows, err := s.db.Query(ctx, cmd, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending topics: %w", err)
	}
	defer rows.Close()

	var topics []domain.TrendingTopic
	for rows.Next() {
		var topic domain.TrendingTopic
		if err := rows.Scan(&topic.Topic, &topic.Rank, &topic.Score); err != nil {
			return nil, fmt.Errorf("failed to scan trending topic: %w", err)
		}
		topics = append(topics, topic)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return topics, nil
}
