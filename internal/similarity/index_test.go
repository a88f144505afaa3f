package similarity

import (
	"context"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage/in_mem"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedArticle(t *testing.T, store *in_mem.Store, title string, publishedAt time.Time, embedding []float32) uuid.UUID {
	t.Helper()

	id, err := store.Save(context.Background(), domain.Article{
		Title:       title,
		Content:     "content of " + title,
		URL:         "http://example.com/" + title,
		PublishedAt: publishedAt,
		Embedding:   embedding,
	})
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)
	return id
}

func TestIndexRelated(t *testing.T) {
	store := in_mem.NewStore()
	now := time.Now()

	target := seedArticle(t, store, "target", now, []float32{1, 0})
	similar := seedArticle(t, store, "similar", now.Add(-time.Hour), []float32{1, 0})
	unrelated := seedArticle(t, store, "unrelated", now.Add(-2*time.Hour), []float32{0, 1})

	idx := NewIndex(store, Config{})

	hits, err := idx.Related(context.Background(), target, 0)
	require.NoError(t, err)

	require.Len(t, hits, 1)
	assert.Equal(t, similar, hits[0].ID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-9)

	for _, hit := range hits {
		assert.NotEqual(t, target, hit.ID, "target must never relate to itself")
		assert.NotEqual(t, unrelated, hit.ID)
	}
}

func TestIndexRelatedOrderingAndLimit(t *testing.T) {
	store := in_mem.NewStore()
	now := time.Now()

	target := seedArticle(t, store, "target", now, []float32{1, 0})
	closest := seedArticle(t, store, "closest", now.Add(-time.Hour), []float32{1, 0.05})
	closer := seedArticle(t, store, "closer", now.Add(-2*time.Hour), []float32{1, 0.4})
	seedArticle(t, store, "far", now.Add(-3*time.Hour), []float32{0.1, 1})

	idx := NewIndex(store, Config{})

	hits, err := idx.Related(context.Background(), target, 2)
	require.NoError(t, err)

	require.Len(t, hits, 2)
	assert.Equal(t, closest, hits[0].ID)
	assert.Equal(t, closer, hits[1].ID)
	assert.Greater(t, hits[0].Score, hits[1].Score)

	hits, err = idx.Related(context.Background(), target, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, closest, hits[0].ID)
}

func TestIndexRelatedThreshold(t *testing.T) {
	store := in_mem.NewStore()
	now := time.Now()

	target := seedArticle(t, store, "target", now, []float32{1, 0})
	// cos(45 degrees) ~= 0.707, just above the default threshold.
	seedArticle(t, store, "borderline-in", now.Add(-time.Hour), []float32{1, 0.99})
	// cos ~= 0.45, well below.
	seedArticle(t, store, "below", now.Add(-2*time.Hour), []float32{1, 2})

	idx := NewIndex(store, Config{})

	hits, err := idx.Related(context.Background(), target, 0)
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestIndexRelatedUnknownTarget(t *testing.T) {
	store := in_mem.NewStore()
	idx := NewIndex(store, Config{})

	hits, err := idx.Related(context.Background(), uuid.New(), 0)
	assert.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndexRelatedTargetWithoutEmbedding(t *testing.T) {
	store := in_mem.NewStore()
	now := time.Now()

	target := seedArticle(t, store, "target", now, nil)
	seedArticle(t, store, "candidate", now.Add(-time.Hour), []float32{1, 0})

	idx := NewIndex(store, Config{})

	hits, err := idx.Related(context.Background(), target, 0)
	assert.NoError(t, err)
	assert.Empty(t, hits)
}
