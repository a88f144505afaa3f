package inference

import (
	"context"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	calls int
}

func (c *countingClient) Summarize(ctx context.Context, text string) (string, error) {
	c.calls++
	return "summary", nil
}

func (c *countingClient) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	c.calls++
	return []string{"kw"}, nil
}

func (c *countingClient) Classify(ctx context.Context, text string) (domain.Category, error) {
	c.calls++
	return domain.CategoryWorld, nil
}

func (c *countingClient) Embed(ctx context.Context, text string) ([]float32, error) {
	c.calls++
	return []float32{1}, nil
}

func TestPacedClientDelegates(t *testing.T) {
	inner := &countingClient{}
	paced := NewPacedClient(inner, time.Millisecond)

	ctx := context.Background()

	summary, err := paced.Summarize(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, "summary", summary)

	keywords, err := paced.ExtractKeywords(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, []string{"kw"}, keywords)

	category, err := paced.Classify(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryWorld, category)

	vector, err := paced.Embed(ctx, "text")
	require.NoError(t, err)
	assert.Equal(t, []float32{1}, vector)

	assert.Equal(t, 4, inner.calls)
}

func TestPacedClientSpacesCalls(t *testing.T) {
	inner := &countingClient{}
	interval := 40 * time.Millisecond
	paced := NewPacedClient(inner, interval)

	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := paced.Summarize(ctx, "text")
		require.NoError(t, err)
	}

	// First call is immediate, the next two wait out the interval.
	assert.GreaterOrEqual(t, time.Since(start), 2*interval)
}

func TestPacedClientHonorsCancelledContext(t *testing.T) {
	inner := &countingClient{}
	paced := NewPacedClient(inner, time.Hour)

	ctx := context.Background()
	_, err := paced.Summarize(ctx, "text")
	require.NoError(t, err)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	_, err = paced.Summarize(cancelled, "text")
	assert.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}
