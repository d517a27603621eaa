package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skatejack/Journaling-Companion/internal/llm"
	"github.com/skatejack/Journaling-Companion/internal/models"
	"github.com/skatejack/Journaling-Companion/internal/store"
	"github.com/skatejack/Journaling-Companion/pkg/crypto"
)

const (
	// weeklyInsightMinEntries is the minimum filtered-entry count before a
	// summary is requested at all.
	weeklyInsightMinEntries = 3
	// weeklyInsightMaxEntries caps how many recent entries feed the summary.
	weeklyInsightMaxEntries = 5
	// topLabelCount is how many emotions/themes the report carries.
	topLabelCount = 5

	entrySeparator = "\n---\n"
)

const weeklyInsightSystemPrompt = `You are a gentle, supportive journaling companion. You will receive a user's recent journal entries separated by "---". Reply with a single short paragraph (2-3 sentences) reflecting the week back to them: name the feelings and themes you notice and offer one kind, concrete observation. Speak directly to the writer. No lists, no headers, no advice-dumping.`

// InsightsService builds windowed statistical reports over a user's
// journal history.
type InsightsService struct {
	kv                store.KV
	generator         llm.Generator
	cache             insightCache // nil disables caching
	cipher            *crypto.ContentCipher
	loc               *time.Location
	defaultWindowDays int
	now               func() time.Time
}

// insightCache is the slice of CacheService the aggregator needs.
type insightCache interface {
	GetString(ctx context.Context, key string) (string, bool)
	SetString(ctx context.Context, key, value string, ttl time.Duration)
}

func NewInsightsService(kv store.KV, generator llm.Generator, cache *CacheService, cipher *crypto.ContentCipher, loc *time.Location, defaultWindowDays int) *InsightsService {
	if loc == nil {
		loc = time.Local
	}
	if defaultWindowDays <= 0 {
		defaultWindowDays = 30
	}
	s := &InsightsService{
		kv:                kv,
		generator:         generator,
		cipher:            cipher,
		loc:               loc,
		defaultWindowDays: defaultWindowDays,
		now:               time.Now,
	}
	if cache != nil {
		s.cache = cache
	}
	return s
}

// DefaultWindowDays is the lookback used when a request does not pass one.
func (s *InsightsService) DefaultWindowDays() int {
	return s.defaultWindowDays
}

// BuildReport aggregates the user's entries within the lookback window.
// An empty window is a valid all-zero report, not an error. The weekly
// insight is best-effort and null whenever generation fails or too few
// entries exist.
func (s *InsightsService) BuildReport(ctx context.Context, userID string, windowDays int) (*models.InsightsReport, error) {
	if windowDays <= 0 {
		return nil, Validationf("window days must be a positive number")
	}

	// Stats and history live under different keys; load them in parallel.
	g, gctx := errgroup.WithContext(ctx)
	var stats models.UserStats
	var entries []models.Entry
	g.Go(func() error {
		var err error
		stats, err = s.loadStats(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = loadUserEntries(gctx, s.kv, s.cipher, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.now()
	cutoff := now.AddDate(0, 0, -windowDays)
	recent := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if !e.CreatedAt.Before(cutoff) {
			recent = append(recent, e)
		}
	}
	sort.Slice(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})

	report := &models.InsightsReport{
		Stats:                 stats,
		WindowDays:            windowDays,
		RecentEntriesCount:    len(recent),
		SentimentDistribution: models.EmptySentimentDistribution(),
		TopEmotions:           []models.LabelCount{},
		TopThemes:             []models.LabelCount{},
		DailyWordCounts:       map[string]int{},
	}

	emotions := newLabelCounter()
	themes := newLabelCounter()
	totalWords := 0
	for i := range recent {
		e := &recent[i]
		if e.Sentiment != nil && models.ValidSentiment(*e.Sentiment) {
			report.SentimentDistribution[*e.Sentiment]++
		}
		for _, label := range e.Emotions {
			emotions.add(label)
		}
		for _, label := range e.Themes {
			themes.add(label)
		}
		report.DailyWordCounts[e.Day(s.loc)] += e.WordCount
		totalWords += e.WordCount
	}
	report.TopEmotions = emotions.top(topLabelCount)
	report.TopThemes = themes.top(topLabelCount)
	if len(recent) > 0 {
		report.AverageWordsPerEntry = int(math.Round(float64(totalWords) / float64(len(recent))))
	}

	if len(recent) >= weeklyInsightMinEntries {
		if insight := s.weeklyInsight(ctx, userID, windowDays, now, recent); insight != "" {
			report.WeeklyInsight = &insight
		}
	}
	return report, nil
}

func (s *InsightsService) loadStats(ctx context.Context, userID string) (models.UserStats, error) {
	data, err := s.kv.Get(ctx, statsKey(userID))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.UserStats{}, nil // no entries yet, zero-state
		}
		return models.UserStats{}, fmt.Errorf("load stats: %w", err)
	}
	var stats models.UserStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return models.UserStats{}, fmt.Errorf("decode stats: %w", err)
	}
	return stats, nil
}

// weeklyInsight asks the model for a short reflection over the most recent
// entries. Cached per user, window, and calendar day so dashboard reloads
// do not repeat the call. Returns "" on any failure.
func (s *InsightsService) weeklyInsight(ctx context.Context, userID string, windowDays int, now time.Time, recent []models.Entry) string {
	day := now.In(s.loc).Format(models.DayFormat)
	cacheKey := CacheKey("weekly_insight", fmt.Sprintf("%s:%s:%d", userID, day, windowDays))
	if s.cache != nil {
		if cached, ok := s.cache.GetString(ctx, cacheKey); ok {
			return cached
		}
	}

	sample := recent
	if len(sample) > weeklyInsightMaxEntries {
		sample = sample[:weeklyInsightMaxEntries]
	}
	var b strings.Builder
	for i := range sample {
		if i > 0 {
			b.WriteString(entrySeparator)
		}
		b.WriteString(sample[i].Content)
	}

	cctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()
	out, err := s.generator.Complete(cctx, weeklyInsightSystemPrompt, b.String())
	if err != nil {
		log.Printf("⚠️  weekly insight generation failed for user %s: %v", userID, err)
		return ""
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return ""
	}

	if s.cache != nil {
		s.cache.SetString(ctx, cacheKey, out, DefaultCacheTTL)
	}
	return out
}

// labelCounter tallies labels while remembering first-encounter order, so
// ties in the top-N tables stay stable.
type labelCounter struct {
	counts map[string]int
	order  []string
}

func newLabelCounter() *labelCounter {
	return &labelCounter{counts: make(map[string]int)}
}

func (c *labelCounter) add(label string) {
	label = strings.TrimSpace(label)
	if label == "" {
		return
	}
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

func (c *labelCounter) top(n int) []models.LabelCount {
	out := make([]models.LabelCount, 0, len(c.order))
	for _, label := range c.order {
		out = append(out, models.LabelCount{Label: label, Count: c.counts[label]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
