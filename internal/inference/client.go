package inference

import (
	"context"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
)

// Client abstracts the external text-inference provider. Summarize,
// ExtractKeywords and Embed signal "no result" with an error or an empty
// value; Classify always yields a category, falling back to
// domain.CategoryOther on uncertainty, because retry accounting requires a
// result on every attempt.
type Client interface {
	Summarize(ctx context.Context, text string) (string, error)
	ExtractKeywords(ctx context.Context, text string) ([]string, error)
	Classify(ctx context.Context, text string) (domain.Category, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}
