package domain

// TrendingTopic is one row of the active trending snapshot. The whole
// snapshot is replaced atomically on every recomputation.
type TrendingTopic struct {
	Topic string  `json:"topic"`
	Rank  int     `json:"rank"`
	Score float64 `json:"score"`
}
