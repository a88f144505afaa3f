package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
)

const (
	defaultModel      = "gemini-1.5-flash"
	defaultEmbedModel = "embedding-001"
	defaultTimeout    = 30 * time.Second

	maxKeywords    = 5
	maxKeywordLen  = 20
	embedBodyChars = 1000
)

// GeminiClient calls the Google Generative Language API for all four
// inference operations.
type GeminiClient struct {
	base       url.URL
	apiKey     string
	model      string
	embedModel string
	http       *http.Client
}

var _ Client = (*GeminiClient)(nil)

type GeminiOption func(*GeminiClient)

func NewGeminiClient(baseURL, apiKey string, opts ...GeminiOption) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("missing inference api key")
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	client := &GeminiClient{
		base:       *base,
		apiKey:     apiKey,
		model:      defaultModel,
		embedModel: defaultEmbedModel,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func WithModel(model string) GeminiOption {
	return func(c *GeminiClient) {
		c.model = model
	}
}

func WithEmbedModel(model string) GeminiOption {
	return func(c *GeminiClient) {
		c.embedModel = model
	}
}

func WithHttpClient(httpClient *http.Client) GeminiOption {
	return func(c *GeminiClient) {
		c.http = httpClient
	}
}

func (c *GeminiClient) Summarize(ctx context.Context, text string) (string, error) {
	input, err := PrepareInput(text, MinTextLength)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"Summarize the following news article in at most three concise sentences. Reply with the summary only.\n\nArticle:\n%q\n\nSummary:",
		input,
	)

	reply, err := c.generate(ctx, prompt)
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(reply), nil
}

func (c *GeminiClient) ExtractKeywords(ctx context.Context, text string) ([]string, error) {
	input, err := PrepareInput(text, MinTextLength)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(
		"Extract the three to five most important keywords from the following news article. Reply only with short noun phrases separated by commas, nothing else.\n\nArticle:\n%q\n\nKeywords:",
		input,
	)

	reply, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return filterKeywords(strings.Split(reply, ",")), nil
}

func (c *GeminiClient) Classify(ctx context.Context, text string) (domain.Category, error) {
	input, err := PrepareInput(text, MinTextLength)
	if err != nil {
		return "", err
	}

	names := make([]string, len(domain.Categories))
	for i, cat := range domain.Categories {
		names[i] = string(cat)
	}
	prompt := fmt.Sprintf(
		"Read the following news article and pick the single best matching category from this list: [%s]. Reply with exactly that category name and nothing else.\n\nArticle:\n%q\n\nCategory:",
		strings.Join(names, ", "),
		input,
	)

	reply, err := c.generate(ctx, prompt)
	if err != nil {
		// Classification must always yield a value for retry accounting.
		slog.Error("classification call failed, falling back", "error", err)
		return domain.CategoryOther, nil
	}

	return domain.ParseCategory(strings.ToLower(strings.TrimSpace(reply))), nil
}

func (c *GeminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	input, err := PrepareInput(text, MinEmbedTextLength)
	if err != nil {
		return nil, err
	}

	req := embedContentRequest{
		Model: "models/" + c.embedModel,
	}
	req.Content.Parts = []contentPart{{Text: input}}

	var resp embedContentResponse
	path := fmt.Sprintf("/v1beta/models/%s:embedContent", c.embedModel)
	if err := c.do(ctx, path, req, &resp); err != nil {
		return nil, err
	}

	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("provider returned empty embedding")
	}

	return resp.Embedding.Values, nil
}

// EmbedInput builds the canonical embedding input: title plus a bounded body
// prefix.
func EmbedInput(title, content string) string {
	if len(content) > embedBodyChars {
		content = content[:embedBodyChars]
	}
	return title + "\n" + content
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	req := generateContentRequest{
		Contents: []content{
			{Parts: []contentPart{{Text: prompt}}},
		},
	}

	var resp generateContentResponse
	path := fmt.Sprintf("/v1beta/models/%s:generateContent", c.model)
	if err := c.do(ctx, path, req, &resp); err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("provider returned no candidates")
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}

func (c *GeminiClient) do(ctx context.Context, path string, reqData, respData any) error {
	reqBytes, err := json.Marshal(reqData)
	if err != nil {
		return err
	}

	reqURL := c.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(reqBytes))
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

// filterKeywords trims the raw comma-split reply, drops terms outside the
// useful length range, and caps the result at maxKeywords.
func filterKeywords(raw []string) []string {
	var keywords []string
	for _, kw := range raw {
		kw = strings.TrimSpace(kw)
		n := utf8.RuneCountInString(kw)
		if n <= 1 || n >= maxKeywordLen {
			continue
		}
		keywords = append(keywords, kw)
		if len(keywords) == maxKeywords {
			break
		}
	}
	return keywords
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

type embedContentRequest struct {
	Model   string `json:"model"`
	Content struct {
		Parts []contentPart `json:"parts"`
	} `json:"content"`
}

type embedContentResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}
