package models

// LabelCount pairs a free-text emotion or theme label with its occurrence
// count. Slices of LabelCount are ordered by descending count, ties kept in
// first-encountered order.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// InsightsReport is the windowed statistical summary of a user's recent
// journaling, as served by the insights endpoint.
type InsightsReport struct {
	Stats                 UserStats         `json:"stats"`
	WindowDays            int               `json:"window_days"`
	RecentEntriesCount    int               `json:"recent_entries_count"`
	SentimentDistribution map[Sentiment]int `json:"sentiment_distribution"`
	TopEmotions           []LabelCount      `json:"top_emotions"`
	TopThemes             []LabelCount      `json:"top_themes"`
	DailyWordCounts       map[string]int    `json:"daily_word_counts"`
	AverageWordsPerEntry  int               `json:"average_words_per_entry"`
	WeeklyInsight         *string           `json:"weekly_insight"`
}

// EmptySentimentDistribution returns a distribution with all three buckets
// present at zero, so reports always carry the full shape.
func EmptySentimentDistribution() map[Sentiment]int {
	return map[Sentiment]int{
		SentimentPositive: 0,
		SentimentNeutral:  0,
		SentimentNegative: 0,
	}
}
