package api

import (
	"time"

	"github.com/google/uuid"
)

const scoreDecimalPlaces = 4

type NewsItem struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	PublishedAt time.Time `json:"publishedAt"`
	SourceName  string    `json:"sourceName,omitempty"`
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Category    string    `json:"category,omitempty"`
	Keywords    []string  `json:"keywords"`
}

type NewsListResponse struct {
	TotalPages  int64      `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	TotalNews   int64      `json:"totalNews"`
	News        []NewsItem `json:"news"`
}

type RelatedHit struct {
	ID    uuid.UUID `json:"id"`
	Score float64   `json:"score"`
}

type RelatedResponse struct {
	ArticleID uuid.UUID    `json:"articleId"`
	Related   []RelatedHit `json:"related"`
}

type TrendingTopicItem struct {
	Topic string `json:"topic"`
	Rank  int    `json:"rank"`
}

type TrendingResponse struct {
	Topics []TrendingTopicItem `json:"topics"`
}
