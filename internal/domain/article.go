package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is a unit of ingested news content together with its AI-derived
// enrichment state. Enrichment fields are mutated only by the enricher.
type Article struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
	SourceName  string    `json:"sourceName,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`

	Category           Category  `json:"category,omitempty"`
	CategoryRetryCount int       `json:"categoryRetryCount"`
	Embedding          []float32 `json:"-"`
	Summarized         bool      `json:"summarized"`
	KeywordsExtracted  bool      `json:"keywordsExtracted"`

	CreatedAt time.Time `json:"createdAt"`
}

// EnrichmentState is the explicit lifecycle value computed from the stored
// enrichment fields, keeping the eligibility logic in one place.
type EnrichmentState string

const (
	StatePending                 EnrichmentState = "pending"
	StatePartiallyEnriched       EnrichmentState = "partial"
	StateComplete                EnrichmentState = "complete"
	StateClassificationExhausted EnrichmentState = "classification_exhausted"
)

// CategoryResolved reports whether classification needs no further attempts:
// either a real category was assigned, or the retry budget is spent.
func (a *Article) CategoryResolved(maxRetry int) bool {
	if a.Category == "" {
		return false
	}
	if a.Category == CategoryOther && a.CategoryRetryCount < maxRetry {
		return false
	}
	return true
}

// NeedsEnrichment is the single batch-selection predicate: non-empty content
// and at least one enrichment field still missing.
func (a *Article) NeedsEnrichment(maxRetry int) bool {
	if a.Content == "" {
		return false
	}
	return !a.Summarized ||
		!a.KeywordsExtracted ||
		!a.CategoryResolved(maxRetry) ||
		a.Embedding == nil
}

func (a *Article) State(maxRetry int) EnrichmentState {
	done := 0
	if a.Summarized {
		done++
	}
	if a.KeywordsExtracted {
		done++
	}
	if a.CategoryResolved(maxRetry) {
		done++
	}
	if a.Embedding != nil {
		done++
	}

	switch done {
	case 0:
		return StatePending
	case 4:
		if a.Category == CategoryOther && a.CategoryRetryCount >= maxRetry {
			return StateClassificationExhausted
		}
		return StateComplete
	default:
		return StatePartiallyEnriched
	}
}

// EnrichmentUpdate carries the field changes of one enrichment cycle for one
// article. Nil pointers mean "leave untouched" so a failed inference call
// never erases previously committed state.
type EnrichmentUpdate struct {
	Summarized         *bool
	KeywordsExtracted  *bool
	Category           *Category
	CategoryRetryCount *int
	Embedding          []float32
}

func (u EnrichmentUpdate) Empty() bool {
	return u.Summarized == nil &&
		u.KeywordsExtracted == nil &&
		u.Category == nil &&
		u.CategoryRetryCount == nil &&
		u.Embedding == nil
}

// RelatedArticle is one hit of the similarity retrieval.
type RelatedArticle struct {
	ID    uuid.UUID `json:"id"`
	Score float64   `json:"score"`
}
