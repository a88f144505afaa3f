package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var articleText = strings.Repeat("the central bank raised interest rates again. ", 5)

func generateReply(text string) string {
	data, _ := json.Marshal(map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]string{{"text": text}}}},
		},
	})
	return string(data)
}

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *GeminiClient) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewGeminiClient(srv.URL, "test-key")
	require.NoError(t, err)
	return srv, client
}

func TestGeminiSummarize(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		assert.Contains(t, r.URL.Path, ":generateContent")
		fmt.Fprint(w, generateReply("  Rates went up. \n"))
	})

	summary, err := client.Summarize(context.Background(), articleText)
	require.NoError(t, err)
	assert.Equal(t, "Rates went up.", summary)
}

func TestGeminiSummarizeRejectsShortInput(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("provider must not be called for rejected input")
	})

	_, err := client.Summarize(context.Background(), "too short")
	assert.ErrorIs(t, err, ErrInputTooShort)
}

func TestGeminiExtractKeywords(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, generateReply("interest rates, central bank , x, a keyword far far too long to keep, inflation, economy, growth"))
	})

	keywords, err := client.ExtractKeywords(context.Background(), articleText)
	require.NoError(t, err)

	// Single-character and over-long terms dropped, capped at five.
	assert.Equal(t, []string{"interest rates", "central bank", "inflation", "economy", "growth"}, keywords)
}

func TestGeminiClassify(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, generateReply(" Economy \n"))
	})

	category, err := client.Classify(context.Background(), articleText)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryEconomy, category)
}

func TestGeminiClassifyUnknownLabelFallsBack(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, generateReply("finance"))
	})

	category, err := client.Classify(context.Background(), articleText)
	require.NoError(t, err)
	assert.Equal(t, domain.CategoryOther, category)
}

func TestGeminiClassifyProviderErrorFallsBack(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	category, err := client.Classify(context.Background(), articleText)
	require.NoError(t, err, "classification must yield a value for retry accounting")
	assert.Equal(t, domain.CategoryOther, category)
}

func TestGeminiEmbed(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, ":embedContent")
		fmt.Fprint(w, `{"embedding":{"values":[0.25,-0.5,0.75]}}`)
	})

	vector, err := client.Embed(context.Background(), articleText)
	require.NoError(t, err)
	assert.Equal(t, []float32{0.25, -0.5, 0.75}, vector)
}

func TestGeminiEmbedEmptyResponse(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"embedding":{"values":[]}}`)
	})

	_, err := client.Embed(context.Background(), articleText)
	assert.Error(t, err)
}

func TestGeminiSummarizeProviderError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Summarize(context.Background(), articleText)
	assert.Error(t, err)
}

func TestEmbedInput(t *testing.T) {
	body := strings.Repeat("b", embedBodyChars+200)

	input := EmbedInput("headline", body)
	assert.True(t, strings.HasPrefix(input, "headline\n"))
	assert.Len(t, input, len("headline\n")+embedBodyChars)

	short := EmbedInput("headline", "tiny body")
	assert.Equal(t, "headline\ntiny body", short)
}
