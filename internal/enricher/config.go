package enricher

const (
	defaultBatchSize          = 5
	defaultMaxCategoryRetries = 3
)

type Config struct {
	// BatchSize bounds how many articles one cycle processes.
	BatchSize int `yaml:"batchSize"`
	// MaxCategoryRetries is the classification retry budget per article.
	MaxCategoryRetries int `yaml:"maxCategoryRetries"`
}

func (c Config) withDefaults() Config {
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.MaxCategoryRetries <= 0 {
		c.MaxCategoryRetries = defaultMaxCategoryRetries
	}
	return c
}
