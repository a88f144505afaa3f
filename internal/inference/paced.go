package inference

import (
	"context"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"golang.org/x/time/rate"
)

// PacedClient enforces a fixed inter-call interval in front of any Client so
// batch jobs stay within provider quotas. Pacing policy lives here, not in
// the business logic.
type PacedClient struct {
	inner   Client
	limiter *rate.Limiter
}

var _ Client = (*PacedClient)(nil)

func NewPacedClient(inner Client, interval time.Duration) *PacedClient {
	return &PacedClient{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (p *PacedClient) Summarize(ctx context.Context, text string) (string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.inner.Summarize(ctx, text)
}

func (p *PacedClient) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.ExtractKeywords(ctx, text)
}

func (p *PacedClient) Classify(ctx context.Context, text string) (domain.Category, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return p.inner.Classify(ctx, text)
}

func (p *PacedClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return p.inner.Embed(ctx, text)
}
