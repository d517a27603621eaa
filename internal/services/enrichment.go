package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/skatejack/Journaling-Companion/internal/llm"
	"github.com/skatejack/Journaling-Companion/internal/models"
)

// llmTimeout bounds every text-generation call. Analysis and summaries
// degrade rather than block their owning request.
const llmTimeout = 8 * time.Second

// maxLabels caps the emotions and themes lists of an entry.
const maxLabels = 3

const extractionSystemPrompt = `You analyze private journal entries. Respond with ONLY a JSON object, no prose before or after, in exactly this shape:
{"sentiment":"positive|neutral|negative","sentiment_score":0.0,"emotions":["..."],"themes":["..."],"key_insights":"..."}
sentiment_score is a number between -1 and 1. List at most 3 emotions and at most 3 themes, lowercase, one or two words each.`

// Enrichment is the analysis attached to an entry at creation. The
// degraded form (null sentiment, empty label lists) is an explicit value,
// not an error: ingestion proceeds with it whenever analysis fails.
type Enrichment struct {
	Sentiment *models.Sentiment
	Emotions  []string
	Themes    []string
	Degraded  bool
}

// DegradedEnrichment is what ingestion falls back to when analysis fails.
func DegradedEnrichment() Enrichment {
	return Enrichment{Emotions: []string{}, Themes: []string{}, Degraded: true}
}

// extractionResult mirrors the JSON the model is asked for. sentiment_score
// and key_insights are decoded to keep the response contract intact, then
// discarded; nothing downstream stores or surfaces them.
type extractionResult struct {
	Sentiment      string   `json:"sentiment"`
	SentimentScore float64  `json:"sentiment_score"`
	Emotions       []string `json:"emotions"`
	Themes         []string `json:"themes"`
	KeyInsights    string   `json:"key_insights"`
}

// EnrichmentService classifies entry content with the text-generation
// service.
type EnrichmentService struct {
	generator llm.Generator
}

func NewEnrichmentService(generator llm.Generator) *EnrichmentService {
	return &EnrichmentService{generator: generator}
}

// Analyze classifies content. Best-effort: any failure (transport, timeout,
// unparseable output) yields the degraded result, never an error.
func (s *EnrichmentService) Analyze(ctx context.Context, content string) Enrichment {
	ctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()

	raw, err := s.generator.Complete(ctx, extractionSystemPrompt, content)
	if err != nil {
		log.Printf("⚠️  entry analysis failed, storing entry without enrichment: %v", err)
		return DegradedEnrichment()
	}

	enrichment, err := parseExtraction(raw)
	if err != nil {
		log.Printf("⚠️  entry analysis returned malformed output, storing entry without enrichment: %v", err)
		return DegradedEnrichment()
	}
	return enrichment
}

// parseExtraction decodes the model's JSON, tolerating markdown code fences
// and surrounding prose. An off-enum sentiment degrades to null without
// discarding the label lists.
func parseExtraction(raw string) (Enrichment, error) {
	jsonPart := extractJSONObject(raw)
	if jsonPart == "" {
		return Enrichment{}, fmt.Errorf("no JSON object in model output %q", truncate(raw, 120))
	}

	var res extractionResult
	if err := json.Unmarshal([]byte(jsonPart), &res); err != nil {
		return Enrichment{}, err
	}

	enrichment := Enrichment{
		Emotions: capLabels(res.Emotions),
		Themes:   capLabels(res.Themes),
	}
	if s := models.Sentiment(strings.ToLower(strings.TrimSpace(res.Sentiment))); models.ValidSentiment(s) {
		enrichment.Sentiment = &s
	}
	return enrichment, nil
}

// extractJSONObject returns the first top-level {...} span in raw, which
// sidesteps code fences and any prose the model wraps around the JSON.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return ""
	}
	return raw[start : end+1]
}

func capLabels(labels []string) []string {
	out := make([]string, 0, maxLabels)
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		out = append(out, label)
		if len(out) == maxLabels {
			break
		}
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
