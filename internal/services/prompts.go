package services

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/skatejack/Journaling-Companion/internal/llm"
	"github.com/skatejack/Journaling-Companion/internal/models"
	"github.com/skatejack/Journaling-Companion/internal/store"
	"github.com/skatejack/Journaling-Companion/pkg/crypto"
)

// promptMaxRecentEntries is how much history personalizes a prompt.
const promptMaxRecentEntries = 3

const promptSystemInstruction = `You write journaling prompts for a private mental-wellness journal. Reply with exactly one prompt: a single open-ended question or invitation, one sentence, warm and non-clinical. No quotes, no numbering, no preamble.`

// cannedPrompts are served whenever prompt generation fails or is disabled.
var cannedPrompts = []string{
	"What made you smile today, even briefly?",
	"Describe a moment from today you want to remember.",
	"What is one thing you're grateful for right now, and why?",
	"What's been on your mind that you haven't said out loud?",
	"If today had a color, what would it be and why?",
	"What would you tell a close friend who had the day you just had?",
}

// PromptService generates writing prompts, personalized from recent
// journaling when history exists.
type PromptService struct {
	kv        store.KV
	generator llm.Generator
	cipher    *crypto.ContentCipher
	loc       *time.Location
}

func NewPromptService(kv store.KV, generator llm.Generator, cipher *crypto.ContentCipher, loc *time.Location) *PromptService {
	if loc == nil {
		loc = time.Local
	}
	return &PromptService{kv: kv, generator: generator, cipher: cipher, loc: loc}
}

// GeneratePrompt returns a writing prompt for the user. Generation failures
// fall back to a canned prompt and are never surfaced; a store failure
// while loading history is.
func (s *PromptService) GeneratePrompt(ctx context.Context, userID string) (string, error) {
	entries, err := loadUserEntries(ctx, s.kv, s.cipher, userID)
	if err != nil {
		return "", err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > promptMaxRecentEntries {
		entries = entries[:promptMaxRecentEntries]
	}

	cctx, cancel := context.WithTimeout(ctx, llmTimeout)
	defer cancel()
	out, err := s.generator.Complete(cctx, promptSystemInstruction, buildPromptRequest(entries, s.loc))
	if err != nil {
		log.Printf("⚠️  prompt generation failed, serving canned prompt: %v", err)
		return cannedPrompt(), nil
	}
	prompt := sanitizePrompt(out)
	if prompt == "" {
		return cannedPrompt(), nil
	}
	return prompt, nil
}

// buildPromptRequest summarizes recent history as mood/theme lines rather
// than raw content, which keeps the request small and shares less text
// with the provider than the entries themselves.
func buildPromptRequest(recent []models.Entry, loc *time.Location) string {
	if len(recent) == 0 {
		return "Write one journaling prompt for someone opening their journal for the first time today."
	}

	var b strings.Builder
	b.WriteString("Write one journaling prompt that gently follows from this person's recent journaling:\n")
	for i := range recent {
		e := &recent[i]
		b.WriteString("- ")
		b.WriteString(e.Day(loc))
		if e.Mood != "" {
			fmt.Fprintf(&b, " (mood: %s)", e.Mood)
		}
		if len(e.Themes) > 0 {
			fmt.Fprintf(&b, ": %s", strings.Join(e.Themes, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cannedPrompt() string {
	return cannedPrompts[rand.Intn(len(cannedPrompts))]
}

// sanitizePrompt reduces model output to the single clean line the UI
// expects.
func sanitizePrompt(out string) string {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, `"'`)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
