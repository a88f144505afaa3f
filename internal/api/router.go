package api

import (
	"errors"
	"strconv"

	"github.com/DjordjeVuckovic/news-pulse/internal/apperr"
	"github.com/DjordjeVuckovic/news-pulse/internal/domain"
	"github.com/DjordjeVuckovic/news-pulse/internal/similarity"
	"github.com/DjordjeVuckovic/news-pulse/internal/storage"
	"github.com/DjordjeVuckovic/news-pulse/pkg/pagination"
	"github.com/DjordjeVuckovic/news-pulse/pkg/utils"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const snippetLength = 200

// NewsRouter exposes the read API: news listing, related articles and the
// current trending snapshot. Handlers serve whatever enrichment state exists;
// an article with nothing related yields an empty list, not an error.
type NewsRouter struct {
	e *echo.Echo

	articles  storage.ArticleStore
	summaries storage.SummaryStore
	keywords  storage.KeywordStore
	trending  storage.TrendingStore
	index     *similarity.Index
}

func NewNewsRouter(
	e *echo.Echo,
	articles storage.ArticleStore,
	summaries storage.SummaryStore,
	keywords storage.KeywordStore,
	trending storage.TrendingStore,
	index *similarity.Index,
) *NewsRouter {
	return &NewsRouter{
		e:         e,
		articles:  articles,
		summaries: summaries,
		keywords:  keywords,
		trending:  trending,
		index:     index,
	}
}

func (r *NewsRouter) Bind() {
	r.e.GET("/api/news", r.listNewsHandler)
	r.e.GET("/api/news/:id/related", r.relatedHandler)
	r.e.GET("/api/trending", r.trendingHandler)
}

func (r *NewsRouter) listNewsHandler(c echo.Context) error {
	var page pagination.OffsetRequest
	if err := c.Bind(&page); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}
	if err := page.Validate(); err != nil {
		return apperr.NewValidationWrap("invalid pagination parameters", err)
	}

	filter := storage.ListFilter{
		Category:   domain.Category(c.QueryParam("category")),
		SourceName: c.QueryParam("source"),
		Page:       page.Page,
		Size:       page.Size,
	}

	articles, total, err := r.articles.List(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	items := make([]NewsItem, 0, len(articles))
	for _, article := range articles {
		items = append(items, r.toNewsItem(c, article))
	}

	size := int64(page.Size)
	totalPages := (total + size - 1) / size

	return c.JSON(200, NewsListResponse{
		TotalPages:  totalPages,
		CurrentPage: page.Page,
		TotalNews:   total,
		News:        items,
	})
}

func (r *NewsRouter) toNewsItem(c echo.Context, article domain.Article) NewsItem {
	ctx := c.Request().Context()

	display := ""
	summary, err := r.summaries.SummaryByArticle(ctx, article.ID)
	switch {
	case err == nil:
		display = summary.Text
	case article.Content != "":
		display = article.Content
		if len(display) > snippetLength {
			display = display[:snippetLength] + "..."
		}
	}

	var keywordTexts []string
	if kws, err := r.keywords.KeywordsByArticle(ctx, article.ID); err == nil {
		for _, kw := range kws {
			keywordTexts = append(keywordTexts, kw.Text)
		}
	}

	return NewsItem{
		ID:          article.ID,
		Title:       article.Title,
		Summary:     display,
		PublishedAt: article.PublishedAt,
		SourceName:  article.SourceName,
		URL:         article.URL,
		ImageURL:    article.ImageURL,
		Category:    string(article.Category),
		Keywords:    keywordTexts,
	}
}

func (r *NewsRouter) relatedHandler(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return apperr.NewValidationWrap("invalid article id", err)
	}

	k := queryInt(c, "k", 0)

	hits, err := r.index.Related(c.Request().Context(), id, k)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.JSON(200, RelatedResponse{ArticleID: id, Related: []RelatedHit{}})
		}
		return err
	}

	related := make([]RelatedHit, 0, len(hits))
	for _, hit := range hits {
		related = append(related, RelatedHit{
			ID:    hit.ID,
			Score: utils.RoundFloat64(hit.Score, scoreDecimalPlaces),
		})
	}

	return c.JSON(200, RelatedResponse{ArticleID: id, Related: related})
}

func (r *NewsRouter) trendingHandler(c echo.Context) error {
	limit := queryInt(c, "limit", 10)

	topics, err := r.trending.ListTrending(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	items := make([]TrendingTopicItem, 0, len(topics))
	for _, topic := range topics {
		items = append(items, TrendingTopicItem{Topic: topic.Topic, Rank: topic.Rank})
	}

	return c.JSON(200, TrendingResponse{Topics: items})
}

func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
