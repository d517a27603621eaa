package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/skatejack/Journaling-Companion/internal/models"
	"github.com/skatejack/Journaling-Companion/internal/store"
	"github.com/skatejack/Journaling-Companion/pkg/crypto"
)

const (
	// Entry records live at entry:{userId}:{entryId}; stats at
	// user_stats:{userId}. The userId segment keeps every read scoped to
	// the authenticated caller.
	entryKeyPrefix = "entry:"
	statsKeyPrefix = "user_stats:"

	// DefaultListLimit is the page size when the caller does not pass one.
	DefaultListLimit = 20
	// MaxListLimit caps requested page sizes.
	MaxListLimit = 100
)

func entryKey(userID, entryID string) string { return entryKeyPrefix + userID + ":" + entryID }
func userEntriesPrefix(userID string) string { return entryKeyPrefix + userID + ":" }
func statsKey(userID string) string          { return statsKeyPrefix + userID }

// JournalService owns entry ingestion (validate, enrich, persist, account)
// and history reads.
type JournalService struct {
	kv       store.KV
	enricher *EnrichmentService
	cipher   *crypto.ContentCipher // nil disables encryption at rest
	loc      *time.Location
	now      func() time.Time
}

func NewJournalService(kv store.KV, enricher *EnrichmentService, cipher *crypto.ContentCipher, loc *time.Location) *JournalService {
	if loc == nil {
		loc = time.Local
	}
	return &JournalService{kv: kv, enricher: enricher, cipher: cipher, loc: loc, now: time.Now}
}

// CreateEntry validates and stores a new entry, then folds it into the
// user's running stats. Returns the stored entry and the updated streak.
// Enrichment is best-effort; a store failure is the only error path.
func (s *JournalService) CreateEntry(ctx context.Context, userID, content string, mood models.Mood, prompt string) (*models.Entry, int, error) {
	if strings.TrimSpace(content) == "" {
		return nil, 0, Validationf("content is required")
	}

	enrichment := s.enricher.Analyze(ctx, content)

	now := s.now()
	entry := &models.Entry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Mood:      mood,
		Prompt:    prompt,
		Sentiment: enrichment.Sentiment,
		Emotions:  enrichment.Emotions,
		Themes:    enrichment.Themes,
		WordCount: countWords(content),
		CreatedAt: now,
	}

	if err := s.saveEntry(ctx, entry); err != nil {
		return nil, 0, err
	}

	streak, err := s.applyEntryToStats(ctx, userID, entry.WordCount, now)
	if err != nil {
		return nil, 0, err
	}
	return entry, streak, nil
}

// ListEntries returns the newest-first page of a user's history plus the
// total entry count.
func (s *JournalService) ListEntries(ctx context.Context, userID string, limit, offset int) ([]models.Entry, int, error) {
	if limit < 0 || offset < 0 {
		return nil, 0, Validationf("limit and offset must be non-negative")
	}
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	entries, err := loadUserEntries(ctx, s.kv, s.cipher, userID)
	if err != nil {
		return nil, 0, err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	total := len(entries)
	if offset >= total {
		return []models.Entry{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return entries[offset:end], total, nil
}

func (s *JournalService) saveEntry(ctx context.Context, entry *models.Entry) error {
	stored := *entry
	if s.cipher != nil {
		sealed, err := s.cipher.Seal(entry.Content)
		if err != nil {
			return fmt.Errorf("seal content: %w", err)
		}
		stored.Content = sealed
	}

	data, err := json.Marshal(&stored)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, entryKey(entry.UserID, entry.ID), data); err != nil {
		return fmt.Errorf("persist entry: %w", err)
	}
	return nil
}

// applyEntryToStats runs the streak transition and totals inside an atomic
// store update, so concurrent entries by the same user cannot lose counts.
func (s *JournalService) applyEntryToStats(ctx context.Context, userID string, wordCount int, createdAt time.Time) (int, error) {
	local := createdAt.In(s.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc)
	todayKey := today.Format(models.DayFormat)
	yesterdayKey := today.AddDate(0, 0, -1).Format(models.DayFormat)

	var streak int
	err := s.kv.Update(ctx, statsKey(userID), func(old []byte) ([]byte, error) {
		var stats models.UserStats
		if old != nil {
			if err := json.Unmarshal(old, &stats); err != nil {
				return nil, fmt.Errorf("decode stats: %w", err)
			}
		}

		switch stats.LastEntryDate {
		case yesterdayKey:
			stats.Streak++
		case todayKey:
			// same-day repeat entry, streak unchanged
		default:
			// streak broken, or first entry ever
			stats.Streak = 1
		}
		stats.TotalEntries++
		stats.TotalWords += wordCount
		stats.LastEntryDate = todayKey

		streak = stats.Streak
		return json.Marshal(&stats)
	})
	if err != nil {
		return 0, fmt.Errorf("update stats: %w", err)
	}
	return streak, nil
}

// loadUserEntries scans a user's entry records, decrypting content when a
// cipher is configured. Individual undecodable records are skipped so one
// bad record cannot take down history reads.
func loadUserEntries(ctx context.Context, kv store.KV, cipher *crypto.ContentCipher, userID string) ([]models.Entry, error) {
	raw, err := kv.ScanPrefix(ctx, userEntriesPrefix(userID))
	if err != nil {
		return nil, fmt.Errorf("scan entries: %w", err)
	}

	entries := make([]models.Entry, 0, len(raw))
	for _, data := range raw {
		var e models.Entry
		if err := json.Unmarshal(data, &e); err != nil {
			log.Printf("⚠️  skipping undecodable entry record for user %s: %v", userID, err)
			continue
		}
		if cipher != nil {
			content, err := cipher.Open(e.Content)
			if err != nil {
				log.Printf("⚠️  skipping entry %s: cannot decrypt content: %v", e.ID, err)
				continue
			}
			e.Content = content
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// countWords counts whitespace-delimited tokens. The result is fixed on the
// entry at creation and never recomputed.
func countWords(content string) int {
	return len(strings.Fields(content))
}
