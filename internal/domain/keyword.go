package domain

import (
	"time"

	"github.com/google/uuid"
)

// Keyword is a many-to-one annotation of an article. The keyword set of an
// article is always replaced as a whole, never merged.
type Keyword struct {
	ArticleID uuid.UUID `json:"articleId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary is the one-to-one AI synopsis of an article.
type Summary struct {
	ArticleID uuid.UUID `json:"articleId"`
	Text      string    `json:"text"`
}
