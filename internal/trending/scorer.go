package trending

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
)

const (
	defaultLookback  = 24 * time.Hour
	defaultDecayRate = 0.1
	defaultTopN      = 10
)

type Config struct {
	// Lookback is the keyword window feeding one recomputation.
	Lookback time.Duration
	// DecayRate is the exponential decay constant per hour of age.
	DecayRate float64
	// TopN is the snapshot size.
	TopN int
}

func (c Config) withDefaults() Config {
	if c.Lookback <= 0 {
		c.Lookback = defaultLookback
	}
	if c.DecayRate <= 0 {
		c.DecayRate = defaultDecayRate
	}
	if c.TopN <= 0 {
		c.TopN = defaultTopN
	}
	return c
}

// Scorer aggregates recently extracted keywords with exponential time decay
// and installs the resulting ranking as an atomic snapshot replacement.
type Scorer struct {
	keywords storage.KeywordStore
	trending storage.TrendingStore
	cfg      Config
}

func NewScorer(keywords storage.KeywordStore, trending storage.TrendingStore, cfg Config) *Scorer {
	return &Scorer{
		keywords: keywords,
		trending: trending,
		cfg:      cfg.withDefaults(),
	}
}

// Recompute scores every keyword occurrence in the lookback window with
// weight exp(-decay * hours of age), ranks the accumulated totals and
// replaces the snapshot. A window with no keywords leaves the previous
// snapshot in place.
func (s *Scorer) Recompute(ctx context.Context, now time.Time) error {
	since := now.Add(-s.cfg.Lookback)
	keywords, err := s.keywords.KeywordsCreatedSince(ctx, since)
	if err != nil {
		return fmt.Errorf("failed to load recent keywords: %w", err)
	}

	if len(keywords) == 0 {
		slog.Info("no recent keywords, keeping previous trending snapshot")
		return nil
	}

	scores := make(map[string]float64)
	for _, kw := range keywords {
		hours := now.Sub(kw.CreatedAt).Hours()
		scores[kw.Text] += math.Exp(-s.cfg.DecayRate * hours)
	}

	ranked := make([]domain.TrendingTopic, 0, len(scores))
	for topic, score := range scores {
		ranked = append(ranked, domain.TrendingTopic{Topic: topic, Score: score})
	}
	// Deterministic order: score descending, topic text as tie-breaker
	// because map iteration order is random.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Topic < ranked[j].Topic
	})

	if len(ranked) > s.cfg.TopN {
		ranked = ranked[:s.cfg.TopN]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	if err := s.trending.ReplaceTrending(ctx, ranked); err != nil {
		return fmt.Errorf("failed to replace trending snapshot: %w", err)
	}

	slog.Info("trending snapshot replaced",
		"keywords_scored", len(keywords),
		"topics_ranked", len(ranked))
	return nil
}
