package inference

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	APIKey       string
	BaseURL      string
	Model        string
	EmbedModel   string
	CallInterval time.Duration
}

const defaultBaseURL = "https://generativelanguage.googleapis.com"

func LoadConfigFromEnv() (*Config, error) {
	apiKey := os.Getenv("INFERENCE_API_KEY")
	if apiKey == "" {
		return nil, errors.New("INFERENCE_API_KEY environment variable not set")
	}

	baseURL := os.Getenv("INFERENCE_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	interval := time.Second
	if v := os.Getenv("INFERENCE_CALL_INTERVAL"); v != "" {
		parsed, err := time.ParseDuration(v)
		if err == nil && parsed > 0 {
			interval = parsed
		}
	}

	return &Config{
		APIKey:       apiKey,
		BaseURL:      baseURL,
		Model:        os.Getenv("INFERENCE_MODEL"),
		EmbedModel:   os.Getenv("INFERENCE_EMBED_MODEL"),
		CallInterval: interval,
	}, nil
}

// NewClientFromConfig builds the paced Gemini client used by the batch jobs.
func NewClientFromConfig(cfg *Config) (Client, error) {
	var opts []GeminiOption
	if cfg.Model != "" {
		opts = append(opts, WithModel(cfg.Model))
	}
	if cfg.EmbedModel != "" {
		opts = append(opts, WithEmbedModel(cfg.EmbedModel))
	}

	gemini, err := NewGeminiClient(cfg.BaseURL, cfg.APIKey, opts...)
	if err != nil {
		return nil, err
	}

	return NewPacedClient(gemini, cfg.CallInterval), nil
}
