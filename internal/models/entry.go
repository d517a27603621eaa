package models

import "time"

// DayFormat is the layout for calendar-day strings used by streaks and
// daily aggregates. Days are computed in the configured service timezone.
const DayFormat = "2006-01-02"

// Mood is the self-reported mood attached to an entry. The UI enforces
// presence; the backend stores whatever was sent, including nothing.
type Mood string

const (
	MoodAmazing    Mood = "amazing"
	MoodGood       Mood = "good"
	MoodOkay       Mood = "okay"
	MoodDifficult  Mood = "difficult"
	MoodStruggling Mood = "struggling"
)

// Sentiment is the analyzed tone of an entry's content.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// ValidSentiment reports whether s is one of the three known values.
func ValidSentiment(s Sentiment) bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// Entry represents one journal submission. Entries are append-only and
// immutable once written; word_count is fixed at creation and never
// recomputed.
type Entry struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Content   string     `json:"content"`
	Mood      Mood       `json:"mood,omitempty"`
	Prompt    string     `json:"prompt,omitempty"`
	Sentiment *Sentiment `json:"sentiment"`
	Emotions  []string   `json:"emotions"`
	Themes    []string   `json:"themes"`
	WordCount int        `json:"word_count"`
	CreatedAt time.Time  `json:"created_at"`
}

// Day returns the entry's calendar-day string in loc.
func (e *Entry) Day(loc *time.Location) string {
	return e.CreatedAt.In(loc).Format(DayFormat)
}
